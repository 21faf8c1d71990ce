package interpreter

import (
	"errors"
	"os"

	"github.com/go-git/go-billy/v5/util"

	"github.com/AlenVelocity/MeowScript/pkg/runtime"
)

// nya:scratchpad. Paths resolve inside the interpreter's filesystem.
func (i *Interpreter) scratchpadNatives() map[string]runtime.Value {
	return map[string]runtime.Value{
		"readFile": runtime.NewNative("readFile", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			path, errVal := stringArg("readFile", args, 0)
			if errVal != nil {
				return errVal
			}
			data, err := util.ReadFile(i.fs, path)
			if err != nil {
				return runtime.NewError("readFile: couldn't read %s: %v", path, err)
			}
			return runtime.StringValue{Val: string(data)}
		}),
		"writeFile": runtime.NewNative("writeFile", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 2); err != nil {
				return err
			}
			path, errVal := stringArg("writeFile", args, 0)
			if errVal != nil {
				return errVal
			}
			if err := util.WriteFile(i.fs, path, []byte(args[1].String()), 0o644); err != nil {
				return runtime.NewError("writeFile: couldn't write %s: %v", path, err)
			}
			return runtime.Null
		}),
		"exists": runtime.NewNative("exists", func(args []runtime.Value) runtime.Value {
			if err := expectArgs(args, 1); err != nil {
				return err
			}
			path, errVal := stringArg("exists", args, 0)
			if errVal != nil {
				return errVal
			}
			_, err := i.fs.Stat(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return runtime.False
				}
				return runtime.NewError("exists: couldn't stat %s: %v", path, err)
			}
			return runtime.True
		}),
	}
}
