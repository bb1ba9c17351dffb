package ecpay

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Operation is the surface the factory, client and CLI rely on.
// Concrete operations get it by embedding *Content.
type Operation interface {
	RequestPath() string
	MerchantID() string
	Payload() (Payload, error)
	Envelope() (Payload, error)
	PayloadEncoder() (PayloadEncoder, error)
	SetHashKey(key string) *Content
	SetHashIV(iv string) *Content
}

// Resolver builds an operation for a registered alias.
type Resolver[T Operation] func(params []string, f *Factory[T]) (Operation, error)

// Initializer runs against every operation the factory returns.
type Initializer[T Operation] func(op T)

// FactoryConfig configures a Factory.
type FactoryConfig[T Operation] struct {
	Namespace    string // Prefix of conventional type names
	MerchantID   string
	HashKey      string
	HashIV       string
	Aliases      map[string]string
	Resolvers    map[string]Resolver[T]
	Initializers []Initializer[T]
	SpecialWords map[string]string // Defaults to DefaultSpecialWords
	Catalog      *Catalog          // Defaults to DefaultCatalog
}

// Credentials is the triple the factory passes to constructors.
type Credentials struct {
	MerchantID string
	HashKey    string
	HashIV     string
}

// Factory resolves strings to operations.
// Resolution order: custom resolver, alias, literal type name, naming convention.
type Factory[T Operation] struct {
	mu           sync.RWMutex
	namespace    string
	credentials  Credentials
	aliases      map[string]string
	resolvers    map[string]Resolver[T]
	initializers []Initializer[T]
	specialWords map[string]string
	catalog      *Catalog
}

// NewFactory builds a factory from cfg.
func NewFactory[T Operation](cfg FactoryConfig[T]) *Factory[T] {
	f := &Factory[T]{
		namespace:    cfg.Namespace,
		aliases:      make(map[string]string),
		resolvers:    make(map[string]Resolver[T]),
		specialWords: cfg.SpecialWords,
		catalog:      cfg.Catalog,
	}
	if f.specialWords == nil {
		f.specialWords = DefaultSpecialWords()
	}
	if f.catalog == nil {
		f.catalog = DefaultCatalog()
	}

	f.SetCredentials(cfg.MerchantID, cfg.HashKey, cfg.HashIV)
	for alias, name := range cfg.Aliases {
		f.Alias(alias, name)
	}
	for alias, r := range cfg.Resolvers {
		f.Extend(alias, r)
	}
	for _, fn := range cfg.Initializers {
		f.AddInitializer(fn)
	}
	return f
}

// Make resolves target and returns the constructed operation.
// With no params the stored credentials are passed to the constructor;
// otherwise params fill merchant id, hash key and hash IV in that order.
func (f *Factory[T]) Make(target string, params ...string) (T, error) {
	start := time.Now()
	op, name, err := f.resolve(target, params)
	emitMake(context.Background(), target, name, time.Since(start), err)
	return op, err
}

func (f *Factory[T]) resolve(target string, params []string) (T, string, error) {
	var zero T

	key := normalizeKey(target)
	if key == "" {
		return zero, "", &ArgumentError{Reason: "alias must not be empty"}
	}

	f.mu.RLock()
	resolver, ok := f.resolvers[key]
	f.mu.RUnlock()

	if ok {
		built, err := resolver(params, f)
		if err != nil {
			return zero, "", err
		}
		op, ok := built.(T)
		if !ok || built == nil {
			return zero, "", &ArgumentError{Target: target, Reason: "resolver must return an operation"}
		}
		return f.initialize(op), key, nil
	}

	name, err := f.ResolveType(target)
	if err != nil {
		return zero, "", err
	}

	op, err := f.build(name, params)
	if err != nil {
		return zero, name, err
	}
	return f.initialize(op), name, nil
}

// ResolveType returns the catalog name target resolves to, without
// building anything. Custom resolvers are not consulted.
func (f *Factory[T]) ResolveType(target string) (string, error) {
	key := normalizeKey(target)
	if key == "" {
		return "", &ArgumentError{Reason: "alias must not be empty"}
	}

	f.mu.RLock()
	aliased, ok := f.aliases[key]
	f.mu.RUnlock()

	if ok {
		_, name, found := f.catalog.Lookup(aliased)
		if !found {
			return "", &ArgumentError{Target: aliased, Reason: "type not found for alias " + key}
		}
		return name, nil
	}

	if candidate := strings.TrimLeft(strings.TrimSpace(target), "/"); candidate != "" {
		if _, name, found := f.catalog.Lookup(candidate); found {
			return name, nil
		}
		if _, name, found := f.catalog.Lookup("/" + candidate); found {
			return name, nil
		}
	}

	group, base, err := ParseAlias(key)
	if err != nil {
		return "", err
	}

	f.mu.RLock()
	name := TypeName(f.namespace, group, StudlyName(base, f.specialWords))
	f.mu.RUnlock()

	_, registered, found := f.catalog.Lookup(name)
	if !found {
		return "", &ArgumentError{Target: target, Reason: "type not found: " + name}
	}
	return registered, nil
}

func (f *Factory[T]) build(name string, params []string) (T, error) {
	var zero T

	ctor, _, ok := f.catalog.Lookup(name)
	if !ok {
		return zero, &ArgumentError{Target: name, Reason: "type not found"}
	}

	creds := f.Credentials()
	args := []string{creds.MerchantID, creds.HashKey, creds.HashIV}
	if len(params) > 0 {
		args = make([]string, 3)
		copy(args, params)
	}

	built := ctor(args[0], args[1], args[2])
	op, ok := built.(T)
	if !ok || built == nil {
		return zero, &ArgumentError{Target: name, Reason: "constructed value has the wrong operation type"}
	}
	return op, nil
}

func (f *Factory[T]) initialize(op T) T {
	f.mu.RLock()
	inits := append([]Initializer[T](nil), f.initializers...)
	f.mu.RUnlock()

	for _, fn := range inits {
		fn(op)
	}
	return op
}

// Alias maps alias to a catalog type name.
func (f *Factory[T]) Alias(alias, typeName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aliases[normalizeKey(alias)] = typeName
}

// Extend registers a custom resolver for alias.
func (f *Factory[T]) Extend(alias string, r Resolver[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolvers[normalizeKey(alias)] = r
}

// AddInitializer appends an initializer.
func (f *Factory[T]) AddInitializer(fn Initializer[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initializers = append(f.initializers, fn)
}

// SetCredentials replaces the default credentials.
func (f *Factory[T]) SetCredentials(merchantID, hashKey, hashIV string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credentials = Credentials{MerchantID: merchantID, HashKey: hashKey, HashIV: hashIV}
}

// Credentials returns the default credentials.
func (f *Factory[T]) Credentials() Credentials {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.credentials
}

// Namespace returns the prefix used for conventional type names.
func (f *Factory[T]) Namespace() string {
	return f.namespace
}

// Catalog returns the catalog the factory resolves against.
func (f *Factory[T]) Catalog() *Catalog {
	return f.catalog
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
