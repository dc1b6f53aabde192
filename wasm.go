//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/golemcloud/rib/cmd"
)

func main() {
	js.Global().Set("UnifyFacts", js.FuncOf(unifyFacts))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}

// unifyFacts takes a facts document and whether to only type check.
func unifyFacts(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "unification panicked: " + fmt.Sprint(r)
		}
	}()

	checkOnly := len(args) > 1 && args[1].Truthy()
	out, err := cmd.Unify([]byte(args[0].String()), checkOnly, false)
	if err != nil {
		return err.Error()
	}
	return out
}
