package fleet

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/intermernet/battery-registry/internal/database"
)

// GroupInput holds the client-supplied fields of a group.
type GroupInput struct {
	Name string
}

// GroupService implements CRUD for groups.
type GroupService struct {
	db  *database.Service
	log logrus.FieldLogger
}

// NewGroupService returns a GroupService backed by db.
func NewGroupService(db *database.Service, log logrus.FieldLogger) *GroupService {
	return &GroupService{db: db, log: log}
}

// Create inserts a group and returns it as stored.
func (s *GroupService) Create(ctx context.Context, in GroupInput) (*database.Group, error) {
	var group *database.Group
	err := s.db.WriteToMainDB(ctx, func(tx *sqlx.Tx) error {
		id, err := s.db.InsertGroup(ctx, tx, database.GroupValues{Name: in.Name})
		if err != nil {
			return err
		}
		group, err = s.db.GetGroupByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, classify("create group", err)
	}

	s.log.WithField("group_id", group.ID).Info("group created")
	return group, nil
}

// Get returns ErrNotFound if the group does not exist.
func (s *GroupService) Get(ctx context.Context, id int64) (*database.Group, error) {
	group, err := s.db.GetGroupByID(ctx, s.db.DB(), id)
	if err != nil {
		return nil, classify("get group", err)
	}
	return group, nil
}

// List returns all groups in insertion order.
func (s *GroupService) List(ctx context.Context) ([]database.Group, error) {
	groups, err := s.db.ListGroups(ctx, s.db.DB())
	if err != nil {
		return nil, classify("list groups", err)
	}
	return groups, nil
}

// Update replaces the group's name and returns the stored row.
func (s *GroupService) Update(ctx context.Context, id int64, in GroupInput) (*database.Group, error) {
	var group *database.Group
	err := s.db.WriteToMainDB(ctx, func(tx *sqlx.Tx) error {
		n, err := s.db.UpdateGroup(ctx, tx, id, database.GroupValues{Name: in.Name})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		group, err = s.db.GetGroupByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, classify("update group", err)
	}

	s.log.WithField("group_id", id).Info("group updated")
	return group, nil
}

// Delete removes the group. Deleting a missing group is not an error.
// SQLite refuses to delete a group that batteries still reference.
func (s *GroupService) Delete(ctx context.Context, id int64) error {
	var n int64
	err := s.db.WriteToMainDB(ctx, func(tx *sqlx.Tx) error {
		var err error
		n, err = s.db.DeleteGroup(ctx, tx, id)
		return err
	})
	if err != nil {
		return classify("delete group", err)
	}

	if n > 0 {
		s.log.WithField("group_id", id).Info("group deleted")
	}
	return nil
}
