package queue

import (
	"fmt"
	"sort"
)

// Names of the available frontier containers
const (
	MaxHeap = "maxheap"
	Heap    = "heap"
	Gods    = "gods"
)

var factories = map[string]func() Frontier{
	MaxHeap: func() Frontier { return NewMaxHeapFrontier(1024) },
	Heap:    func() Frontier { return NewHeapFrontier(1024) },
	Gods:    func() Frontier { return NewGodsFrontier() },
}

// Factory returns a constructor for the frontier with the given name.
func Factory(name string) (func() Frontier, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown frontier %q, expected one of %v", name, Names())
	}
	return f, nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
