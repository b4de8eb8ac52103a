package project

import (
	"net/mail"
	"strings"

	"github.com/tmewes/pymeta/pkg/errors"
)

func (x *extraction) authors(v any) error {
	people, err := fetchPeople(v, "project.authors")
	if err != nil {
		return err
	}
	x.meta.Authors = people
	return nil
}

func (x *extraction) maintainers(v any) error {
	people, err := fetchPeople(v, "project.maintainers")
	if err != nil {
		return err
	}
	x.meta.Maintainers = people
	return nil
}

// fetchPeople validates an authors/maintainers list. Entries are tables
// with "name" and/or "email" keys; a plain "Jane Doe <jane@example.com>"
// string is accepted and split into the pair. Entry order is preserved.
func fetchPeople(v any, path string) ([]Person, error) {
	shapeErr := func() error {
		return errors.NewField(errors.ErrCodeInvalidType, path,
			"invalid type, expecting a list of dictionaries containing the "+
				"%q and/or %q keys (got %q)", "name", "email", describe(v))
	}

	arr, ok := asArray(v)
	if !ok {
		return nil, shapeErr()
	}

	people := make([]Person, 0, len(arr))
	for _, item := range arr {
		switch entry := item.(type) {
		case string:
			p, err := parseAuthorString(entry, path)
			if err != nil {
				return nil, err
			}
			people = append(people, p)
		case map[string]any:
			p, err := parseAuthorTable(entry, path)
			if err != nil {
				return nil, err
			}
			people = append(people, p)
		default:
			return nil, shapeErr()
		}
	}
	return people, nil
}

// parseAuthorString splits "Name <email>" (or a bare address) into a Person.
func parseAuthorString(s, path string) (Person, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return Person{}, errors.NewField(errors.ErrCodeInvalidFormat, path,
			"invalid author string %q, expecting %q", s, "Name <email>")
	}
	return Person{Name: addr.Name, Email: addr.Address}, nil
}

func parseAuthorTable(tab map[string]any, path string) (Person, error) {
	var p Person
	for _, k := range sortedKeys(tab) {
		s, ok := tab[k].(string)
		if !ok {
			return Person{}, errors.NewField(errors.ErrCodeInvalidType, path,
				"invalid type, expecting a list of dictionaries containing the "+
					"%q and/or %q keys (got %q)", "name", "email", describe(tab))
		}
		switch k {
		case "name":
			p.Name = s
		case "email":
			if err := checkEmail(s, path); err != nil {
				return Person{}, err
			}
			p.Email = s
		default:
			return Person{}, errors.NewField(errors.ErrCodeUnknownField, path+"."+k,
				"unexpected field")
		}
	}
	if p.Name == "" && p.Email == "" {
		return Person{}, errors.NewField(errors.ErrCodeMissingField, path,
			"entry must contain at least one of the %q and %q keys", "name", "email")
	}
	return p, nil
}

// checkEmail rejects anything but a bare, well-formed address; display
// names belong in the separate "name" key.
func checkEmail(s, path string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || strings.ContainsAny(s, "<>") {
		return errors.NewField(errors.ErrCodeInvalidFormat, path,
			"invalid email address %q", s)
	}
	return nil
}
