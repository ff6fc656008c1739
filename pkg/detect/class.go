package detect

import "context"

// ClassResolver reports whether a class is loadable in the host runtime.
type ClassResolver interface {
	ClassLoaded(name string) bool
}

// ClassResolverFunc adapts a function to ClassResolver.
type ClassResolverFunc func(name string) bool

func (f ClassResolverFunc) ClassLoaded(name string) bool { return f(name) }

// ClassLoaded fires when the resolver finds any of Classes.
type ClassLoaded struct {
	Resolver ClassResolver
	Classes  []string
}

func (c *ClassLoaded) Name() string       { return "hook_classes" }
func (c *ClassLoaded) Category() Category { return CategoryHook }

func (c *ClassLoaded) Detect(_ context.Context) (bool, error) {
	if c.Resolver == nil {
		return false, nil
	}
	for _, name := range c.Classes {
		if c.Resolver.ClassLoaded(name) {
			return true, nil
		}
	}
	return false, nil
}
