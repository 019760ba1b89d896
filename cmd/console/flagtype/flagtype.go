package flagtype

import (
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Quantity is a size flag, like "4Gi" or "500M".
type Quantity resource.Quantity

func (q *Quantity) String() string {
	return (*resource.Quantity)(q).String()
}

func (q *Quantity) Set(expr string) error {
	parsed, err := resource.ParseQuantity(expr)
	if err != nil {
		return err
	}
	if parsed.Sign() < 0 {
		return fmt.Errorf("negative size: %s", expr)
	}
	*q = (Quantity)(parsed)
	return nil
}

func (q *Quantity) AsResourceQuantity() *resource.Quantity {
	return (*resource.Quantity)(q)
}

// GiB returns the size in GiB, rounded up.
func (q *Quantity) GiB() int {
	const gib = int64(1) << 30
	b := (*resource.Quantity)(q).Value()
	return int((b + gib - 1) / gib)
}

func MustParse(expr string) *Quantity {
	q := Quantity{}
	if err := q.Set(expr); err != nil {
		panic(err)
	}
	return &q
}

// Parsed is a flag value parsed by a parser.
type Parsed[T interface{ String() string }] struct {
	value  T
	parser func(string) (T, error)
	isSet  bool
}

func (p *Parsed[T]) String() string {
	if p == nil || !p.isSet {
		return ""
	}
	return p.value.String()
}

func (p *Parsed[T]) Set(s string) error {
	v, err := p.parser(s)
	if err != nil {
		return err
	}
	p.isSet = true
	p.value = v
	return nil
}

func (p *Parsed[T]) Value() T {
	return p.value
}

func (p *Parsed[T]) IsSet() bool {
	return p != nil && p.isSet
}

func Parser[T interface{ String() string }](parser func(string) (T, error)) *Parsed[T] {
	return &Parsed[T]{parser: parser}
}

// UUID flag.
func UUID() *Parsed[uuid.UUID] {
	return Parser(uuid.Parse)
}

// ImageRef flag, an OCI image reference like "nginx:1.27" or "ghcr.io/org/app@sha256:...".
func ImageRef() *Parsed[name.Reference] {
	return Parser(func(s string) (name.Reference, error) {
		return name.ParseReference(s)
	})
}

// ID validates s as an id of resources, and returns its canonical form.
func ID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id.String(), nil
}

// Strings is a repeatable string flag.
type Strings []string

func (s *Strings) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *Strings) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// KeyValues is a repeatable KEY=VALUE flag.
type KeyValues map[string]string

func (kv *KeyValues) String() string {
	if kv == nil || *kv == nil {
		return ""
	}
	pairs := make([]string, 0, len(*kv))
	for k, v := range *kv {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (kv *KeyValues) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("not KEY=VALUE: %q", s)
	}
	if *kv == nil {
		*kv = KeyValues{}
	}
	(*kv)[k] = v
	return nil
}
