package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mmcshane/usdt"
	"github.com/mmcshane/usdt/cmd/demo/generated/salp_demo"
)

func main() {
	fmt.Println("List the go probes in this demo with")
	fmt.Println("\tsudo tplist -vp \"$(pgrep demo)\" \"salp_demo*\"")
	fmt.Println("Trace this process with")
	fmt.Println("\tsudo trace -p \"$(pgrep demo | head -n1)\" 'u::p1 \"arg1=%d arg2=%s\", arg1, arg2' 'u::p2 \"arg1=%d\", arg1'")

	if err := usdt.RegisterProbes(); err != nil {
		fmt.Fprintln(os.Stderr, "register probes:", err)
		os.Exit(1)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	var i int8
	var j uint8

	for {
		select {
		case <-c:
			return
		case now := <-time.After(1 * time.Second):
			s := now.Format(time.RFC1123Z)
			salp_demo.P1(func() (int8, string) { return i, s })
			salp_demo.P2(func() (uint8, string) { return j, s })
			i++
			j += 2
		}
	}
}
