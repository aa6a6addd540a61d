package catalog

// UnknownCreatorKey is the placeholder creator for lists whose owner is not
// known to this service.
const UnknownCreatorKey = "unknown"

// ListCreator identifies the owner of a list.
type ListCreator struct {
	Key string `json:"key" validate:"required"`
}

// List is a named, ordered collection of books. Books may be empty even
// when BooksCount > 0: population is lazy and separate from the metadata
// fetch.
type List struct {
	BaseInfo
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description,omitempty"`
	BooksCount  int         `json:"booksCount,omitempty"`
	Books       []Book      `json:"books"`
	Creator     ListCreator `json:"creator"`
}

// Kind implements Artifact.
func (List) Kind() Category { return CategoryLists }

// ListData is the metadata-only projection of a List: the List shape minus
// the materialized Books, plus the bare keys of its members.
type ListData struct {
	BaseInfo
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description,omitempty"`
	BooksCount  int         `json:"booksCount,omitempty"`
	BookKeys    []string    `json:"bookKeys"`
	Creator     ListCreator `json:"creator"`
}

// Data strips the materialized books from l, recording only their keys.
func (l List) Data() ListData {
	keys := make([]string, 0, len(l.Books))
	for _, b := range l.Books {
		keys = append(keys, b.Key)
	}
	return ListData{
		BaseInfo:    l.BaseInfo,
		Name:        l.Name,
		Description: l.Description,
		BooksCount:  l.BooksCount,
		BookKeys:    keys,
		Creator:     l.Creator,
	}
}

// List rebuilds a List from the projection. Books starts empty; callers
// re-aggregate members separately.
func (d ListData) List() List {
	return List{
		BaseInfo:    d.BaseInfo,
		Name:        d.Name,
		Description: d.Description,
		BooksCount:  d.BooksCount,
		Books:       []Book{},
		Creator:     d.Creator,
	}
}

// NewList constructs a List with the documented defaults applied: trimmed
// name, empty book slice, unknown creator when none is supplied.
func NewList(base BaseInfo, name string) List {
	return List{
		BaseInfo: base,
		Name:     name,
		Books:    []Book{},
		Creator:  ListCreator{Key: UnknownCreatorKey},
	}
}
