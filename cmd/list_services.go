package cmd

import (
	"fmt"
	"sort"
)

// ListServicesCmd prints every tool service and its methods.
type ListServicesCmd struct{}

func (c *ListServicesCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	registry := svc.Registry()
	for _, name := range registry.Services() {
		s := registry.Lookup(name)
		if s == nil {
			continue
		}
		fmt.Println(name)
		// Deterministic order, sort method signatures by name.
		methods := s.Methods()
		sorted := make([]string, 0, len(methods))
		byName := make(map[string]string, len(methods))
		for _, sig := range methods {
			sorted = append(sorted, sig.Name)
			byName[sig.Name] = sig.Description
		}
		sort.Strings(sorted)
		for _, m := range sorted {
			fmt.Printf("  %s\t%s\n", m, byName[m])
		}
	}
	return nil
}
