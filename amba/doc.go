// Package amba defines the signal bundles of the AXI4 and APB protocols as
// well as the simplified request/response stream used inside a bridge.
//
// Every bundle is a plain comparable struct so that it can travel on an
// rtl.Signal and be exported through rtl.Flatten.
package amba
