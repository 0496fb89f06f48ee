package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle. Inside
// Transaction the handle is the open transaction, so every read and write made
// through the tx Store commits or rolls back together.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Boards() *BoardRepository {
	return NewBoardRepository(s.db)
}

func (s *Store) Columns() *ColumnRepository {
	return NewColumnRepository(s.db)
}

func (s *Store) Tasks() *TaskRepository {
	return NewTaskRepository(s.db)
}

func (s *Store) Users() *UserRepository {
	return NewUserRepository(s.db)
}

func (s *Store) MagicLinks() *MagicLinkRepository {
	return NewMagicLinkRepository(s.db)
}
