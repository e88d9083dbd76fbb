package main

import (
	"context"
	"fmt"
)

// runDelete asks for confirmation (unless --yes), performs the delete, and
// drops the resource's cached reads so the next list re-fetches. Declining
// is not an error; the endpoint is simply never called.
func (a *app) runDelete(ctx context.Context, resource, label string, yes bool, remove func(context.Context) error) error {
	if !yes && !a.confirm(fmt.Sprintf("Delete %s?", label)) {
		fmt.Fprintln(a.stdout, "Aborted.")
		return nil
	}
	if err := remove(ctx); err != nil {
		return err
	}
	a.invalidate(resource)
	fmt.Fprintf(a.stdout, "Deleted %s.\n", label)
	return nil
}
