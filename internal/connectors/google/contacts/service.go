package contacts

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Feed URIs of the authenticated user's contacts and groups.
const (
	ContactsURI = "https://www.google.com/m8/feeds/contacts/default/full"
	GroupsURI   = "https://www.google.com/m8/feeds/groups/default/full"
)

func querier(q *Query) gdata.Querier {
	if q == nil {
		return nil
	}
	return q
}

// QueryContacts fetches a page of the user's contacts.
func QueryContacts(
	ctx context.Context,
	svc *google.Service,
	q *Query,
	progress func(*Contact),
) (*gdata.Feed[*Contact], error) {
	return google.QueryFeed(ctx, svc, querier(q), ContactsURI, newEmptyContact, progress)
}

// QueryGroups fetches a page of the user's contact groups.
func QueryGroups(
	ctx context.Context,
	svc *google.Service,
	q *Query,
	progress func(*Group),
) (*gdata.Feed[*Group], error) {
	return google.QueryFeed(ctx, svc, querier(q), GroupsURI, newEmptyGroup, progress)
}

// GetContact fetches the contact with the given id. A non-empty etag makes
// the request conditional; google.ErrNotModified reports no change.
func GetContact(ctx context.Context, svc *google.Service, id, etag string) (*Contact, error) {
	if id == "" {
		return nil, fmt.Errorf("contact id is empty: %w", domain.ErrInvalidInput)
	}
	contact := newEmptyContact()
	if err := google.QueryEntry(ctx, svc, EntryURI(id), etag, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// InsertContact adds contact to the user's address book.
func InsertContact(ctx context.Context, svc *google.Service, contact *Contact) (*Contact, error) {
	return google.InsertEntry(ctx, svc, ContactsURI, contact, newEmptyContact)
}

// InsertGroup creates a user group. System groups already exist and cannot
// be inserted.
func InsertGroup(ctx context.Context, svc *google.Service, group *Group) (*Group, error) {
	if group.SystemGroupID() != "" {
		return nil, fmt.Errorf("system group %q cannot be inserted: %w", group.SystemGroupID(), domain.ErrInvalidInput)
	}
	return google.InsertEntry(ctx, svc, GroupsURI, group, newEmptyGroup)
}

// UpdateContact replaces contact through its edit link.
func UpdateContact(ctx context.Context, svc *google.Service, contact *Contact) (*Contact, error) {
	return google.UpdateEntry(ctx, svc, contact, newEmptyContact)
}

// DeleteContact removes contact.
func DeleteContact(ctx context.Context, svc *google.Service, contact *Contact) error {
	return google.DeleteEntry(ctx, svc, contact)
}
