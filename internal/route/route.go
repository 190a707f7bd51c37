// Package route defines the closed set of navigation targets a button can carry.
// Every route renders to a callback token and parses back from it.
package route

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/m3rciful/petshop/core/telegram/callbacks"
	"github.com/m3rciful/petshop/internal/model"
)

// ErrUnknown is returned by Parse for tokens outside the route set.
var ErrUnknown = errors.New("route: unknown token")

// Route is one navigation target. The set of implementations is closed.
type Route interface {
	Token() string
	route()
}

type (
	// Main is the greeting screen.
	Main struct{}
	// Shop lists the categories.
	Shop struct{}
	// About is the static description.
	About struct{}
	// Category lists the items of one category.
	Category struct{ Category model.Category }
	// Item shows one item.
	Item struct{ ID int64 }
	// Buy files a purchase request for an item.
	Buy struct{ ID int64 }
	// Admin is the administrator panel.
	Admin struct{}
	// AdminAdd starts the item entry wizard.
	AdminAdd struct{}
	// AdminCancel abandons the item entry wizard.
	AdminCancel struct{}
	// AdminDeleteMenu lists items for deletion.
	AdminDeleteMenu struct{}
	// AdminList lists the whole catalog.
	AdminList struct{}
	// ConfirmDelete asks before deleting an item.
	ConfirmDelete struct{ ID int64 }
	// Delete removes an item.
	Delete struct{ ID int64 }
)

const (
	keyMain          = "main"
	keyShop          = "shop"
	keyAbout         = "about"
	keyCategory      = "category"
	keyItem          = "item"
	keyBuy           = "buy"
	keyAdmin         = "admin"
	keyAdminAdd      = "admin.add"
	keyAdminCancel   = "admin.cancel"
	keyAdminDelete   = "admin.delete_menu"
	keyAdminList     = "admin.list"
	keyConfirmDelete = "admin.confirm_delete"
	keyDelete        = "delete"
)

func withID(key string, id int64) string {
	return key + callbacks.Separator + strconv.FormatInt(id, 10)
}

func (Main) Token() string            { return keyMain }
func (Shop) Token() string            { return keyShop }
func (About) Token() string           { return keyAbout }
func (r Category) Token() string      { return keyCategory + callbacks.Separator + string(r.Category) }
func (r Item) Token() string          { return withID(keyItem, r.ID) }
func (r Buy) Token() string           { return withID(keyBuy, r.ID) }
func (Admin) Token() string           { return keyAdmin }
func (AdminAdd) Token() string        { return keyAdminAdd }
func (AdminCancel) Token() string     { return keyAdminCancel }
func (AdminDeleteMenu) Token() string { return keyAdminDelete }
func (AdminList) Token() string       { return keyAdminList }
func (r ConfirmDelete) Token() string { return withID(keyConfirmDelete, r.ID) }
func (r Delete) Token() string        { return withID(keyDelete, r.ID) }

func (Main) route()            {}
func (Shop) route()            {}
func (About) route()           {}
func (Category) route()        {}
func (Item) route()            {}
func (Buy) route()             {}
func (Admin) route()           {}
func (AdminAdd) route()        {}
func (AdminCancel) route()     {}
func (AdminDeleteMenu) route() {}
func (AdminList) route()       {}
func (ConfirmDelete) route()   {}
func (Delete) route()          {}

var exact = map[string]Route{
	keyMain:        Main{},
	keyShop:        Shop{},
	keyAbout:       About{},
	keyAdmin:       Admin{},
	keyAdminAdd:    AdminAdd{},
	keyAdminCancel: AdminCancel{},
	keyAdminDelete: AdminDeleteMenu{},
	keyAdminList:   AdminList{},
}

var byID = map[string]func(int64) Route{
	keyItem:          func(id int64) Route { return Item{ID: id} },
	keyBuy:           func(id int64) Route { return Buy{ID: id} },
	keyConfirmDelete: func(id int64) Route { return ConfirmDelete{ID: id} },
	keyDelete:        func(id int64) Route { return Delete{ID: id} },
}

// Keys lists every token key, the part before the parameter separator.
func Keys() []string {
	keys := make([]string, 0, len(exact)+len(byID)+1)
	for k := range exact {
		keys = append(keys, k)
	}
	for k := range byID {
		keys = append(keys, k)
	}
	return append(keys, keyCategory)
}

// Parse resolves a callback token: exact tokens first, then "<key>:<param>".
func Parse(token string) (Route, error) {
	if r, ok := exact[token]; ok {
		return r, nil
	}
	key, param := callbacks.SplitToken(token)
	if param == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, token)
	}
	if key == keyCategory {
		c := model.Category(param)
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknown, token)
		}
		return Category{Category: c}, nil
	}
	build, ok := byID[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, token)
	}
	id, ok := callbacks.PositiveID(param)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, token)
	}
	return build(id), nil
}

// Name is the token key, used as a low-cardinality log attribute.
func Name(r Route) string {
	key, _ := callbacks.SplitToken(r.Token())
	return key
}

// RequiresAdmin reports whether only administrators may open r.
func RequiresAdmin(r Route) bool {
	switch r.(type) {
	case Admin, AdminAdd, AdminCancel, AdminDeleteMenu, AdminList, ConfirmDelete, Delete:
		return true
	}
	return false
}
