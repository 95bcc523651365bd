package domain

import "strings"

// PostFilter selects which posts make up a viewer's feed.
//
// The set of filters is closed: each mode is a struct in this package and
// dispatches through PostFilterVisitor, so adding a mode adds a visitor method
// and every feed implementation stops compiling until it handles the new case.
type PostFilter interface {
	String() string
	Accept(v PostFilterVisitor) error
}

// PostFilterVisitor handles one case per feed mode.
type PostFilterVisitor interface {
	VisitAll() error
	VisitMyPosts() error
	VisitTribePosts() error
	VisitFriendsPosts() error
}

// AllPosts selects every post.
type AllPosts struct{}

// MyPosts selects posts authored by the viewer.
type MyPosts struct{}

// TribePosts selects posts tagged with any tribe the viewer belongs to.
type TribePosts struct{}

// FriendsPosts selects posts authored by users the viewer follows.
type FriendsPosts struct{}

func (AllPosts) String() string     { return "ALL" }
func (MyPosts) String() string      { return "MY_POSTS" }
func (TribePosts) String() string   { return "TRIBE_POSTS" }
func (FriendsPosts) String() string { return "FRIENDS_POSTS" }

func (AllPosts) Accept(v PostFilterVisitor) error     { return v.VisitAll() }
func (MyPosts) Accept(v PostFilterVisitor) error      { return v.VisitMyPosts() }
func (TribePosts) Accept(v PostFilterVisitor) error   { return v.VisitTribePosts() }
func (FriendsPosts) Accept(v PostFilterVisitor) error { return v.VisitFriendsPosts() }

// PostFilters lists every supported filter in display order.
func PostFilters() []PostFilter {
	return []PostFilter{AllPosts{}, MyPosts{}, TribePosts{}, FriendsPosts{}}
}

// ParsePostFilter resolves a filter name, case-insensitively.
// An empty name selects ALL.
func ParsePostFilter(name string) (PostFilter, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "" {
		return AllPosts{}, nil
	}
	for _, f := range PostFilters() {
		if f.String() == normalized {
			return f, nil
		}
	}
	return nil, &UnsupportedFilterError{Filter: name}
}
