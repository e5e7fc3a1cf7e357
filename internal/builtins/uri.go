package builtins

import (
	"net/url"

	"github.com/go-jsvm/jsvm/internal/value"
)

// installURI installs the four URI codec globals (spec.md §6), built
// on net/url's escaping. The component pair uses query escaping, so
// encodeURIComponent turns a space into '+' and decodeURIComponent
// turns '+' into a space.
func installURI(global *value.Object) {
	global.SetValue("encodeURIComponent", value.NewNativeFunction("encodeURIComponent", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		return value.String(url.QueryEscape(str(args))), nil
	}))
	global.SetValue("decodeURIComponent", value.NewNativeFunction("decodeURIComponent", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		s, err := url.QueryUnescape(str(args))
		if err != nil {
			return value.Undefined, value.Throw(value.String(err.Error()))
		}
		return value.String(s), nil
	}))
	global.SetValue("encodeURI", value.NewNativeFunction("encodeURI", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		u := &url.URL{Path: str(args)}
		return value.String(u.EscapedPath()), nil
	}))
	global.SetValue("decodeURI", value.NewNativeFunction("decodeURI", func(args []value.Value, global, this, callee value.Value) (value.Value, error) {
		s, err := url.PathUnescape(str(args))
		if err != nil {
			return value.Undefined, value.Throw(value.String(err.Error()))
		}
		return value.String(s), nil
	}))
}

func str(args []value.Value) string {
	if len(args) == 0 {
		return ""
	}
	return args[0].String()
}
