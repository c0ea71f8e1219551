package di

import "fmt"

// panicError turns a recovered MustInvoke panic back into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
