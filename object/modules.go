package object

import (
	"os"

	"golang.org/x/sys/unix"
)

// ResolveModule implements `import "name"` against the small set of builtin
// modules the runtime embeds directly; both the tree-walking interpreter
// and the bytecode vm share this registry so `import` behaves identically
// under either execution strategy. There is no filesystem module loader:
// user-authored modules are out of scope for the embedded builtins
// registry.
func ResolveModule(path string) (*Module, *Exception) {
	switch path {
	case "os":
		return osModule(), nil
	case "sys":
		return sysModule(), nil
	default:
		return nil, NewException(KindImport, "no module named %q", path)
	}
}

// osModule exposes a thin, Unix-specific slice of process and filesystem
// primitives through golang.org/x/sys/unix, the same low-level syscall
// package the rest of the runtime's platform code is built on.
func osModule() *Module {
	env := NewEnv(nil)
	env.Define("getpid", &Builtin{Name: "os.getpid", Fn: func(th *Thread, args []Value) (Value, *Exception) {
		return NewInt(int64(unix.Getpid())), nil
	}}, true)
	env.Define("getppid", &Builtin{Name: "os.getppid", Fn: func(th *Thread, args []Value) (Value, *Exception) {
		return NewInt(int64(unix.Getppid())), nil
	}}, true)
	env.Define("getenv", &Builtin{Name: "os.getenv", Fn: func(th *Thread, args []Value) (Value, *Exception) {
		if len(args) != 1 {
			return nil, NewException(KindValue, "getenv() takes exactly one argument")
		}
		name, ok := args[0].(*String)
		if !ok {
			return nil, NewException(KindType, "getenv() argument must be a string")
		}
		v, ok := os.LookupEnv(name.Val)
		if !ok {
			return None, nil
		}
		return NewString(v), nil
	}}, true)
	return &Module{Name: "os", Globals: env}
}

// sysModule exposes process argv/exit, the builtins every embedded
// scripting runtime's entry module carries.
func sysModule() *Module {
	env := NewEnv(nil)
	argv := make([]Value, len(os.Args))
	for i, a := range os.Args {
		argv[i] = NewString(a)
	}
	env.Define("argv", NewList(argv), true)
	env.Define("exit", &Builtin{Name: "sys.exit", Fn: func(th *Thread, args []Value) (Value, *Exception) {
		code := 0
		if len(args) == 1 {
			if iv, ok := args[0].(*Int); ok {
				code = int(iv.Val.Int64())
			}
		}
		os.Exit(code)
		return None, nil
	}}, true)
	return &Module{Name: "sys", Globals: env}
}
