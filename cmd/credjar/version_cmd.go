package main

import (
	"fmt"
	"runtime"
)

func versionCommand(_ *Command, env *Env, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("version takes no arguments")
	}
	v := env.Version
	fmt.Fprintf(env.Stdout, "credjar %s (commit: %s, built: %s, %s %s/%s)\n",
		v.Version, v.Commit, v.Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
