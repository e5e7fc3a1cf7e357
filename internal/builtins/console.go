package builtins

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-jsvm/jsvm/internal/value"
)

// installConsole installs `console.log/error/exception` (spec.md §6).
// All three write their arguments, space-joined and without a prefix,
// to the interpreter's single configured output writer; error and
// exception output is not separated from log output.
func installConsole(global *value.Object, output io.Writer) {
	c := value.NewObject()

	write := func(prefix string) value.NativeFn {
		return func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = a.String()
			}
			line := strings.Join(parts, " ")
			if prefix != "" {
				line = prefix + line
			}
			fmt.Fprintln(output, line)
			return value.Undefined, nil
		}
	}

	c.SetValue("log", value.NewNativeFunction("log", write("")))
	c.SetValue("error", value.NewNativeFunction("error", write("")))
	c.SetValue("exception", value.NewNativeFunction("exception", write("")))

	global.SetValue("console", value.FromObject(c))
}
