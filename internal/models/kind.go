package models

import "fmt"

// Kind identifies one of the entity tables managed by ingestion.
type Kind string

const (
	KindCategory  Kind = "category"
	KindPlatform  Kind = "platform"
	KindDeveloper Kind = "developer"
	KindPublisher Kind = "publisher"
	KindGame      Kind = "game"
)

// RelatedKinds lists the kinds that are materialized before games, in order.
var RelatedKinds = []Kind{KindDeveloper, KindPublisher, KindCategory, KindPlatform}

// New returns an empty record of the kind with name and slug set.
func (k Kind) New(name, slug string) (Named, error) {
	switch k {
	case KindCategory:
		return &Category{Name: name, Slug: slug}, nil
	case KindPlatform:
		return &Platform{Name: name, Slug: slug}, nil
	case KindDeveloper:
		return &Developer{Name: name, Slug: slug}, nil
	case KindPublisher:
		return &Publisher{Name: name, Slug: slug}, nil
	case KindGame:
		return &Game{Name: name, Slug: slug}, nil
	default:
		return nil, fmt.Errorf("unknown entity kind %q", string(k))
	}
}

func (k Kind) String() string { return string(k) }
