package repository

import (
	"errors"
	"fmt"
	"strings"

	"nutriplan/utils"

	"gorm.io/gorm"
)

// Store is the gorm-backed data access layer. Every list method returns fully
// hydrated aggregates; every create of a parent and its children runs in one
// transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// DB exposes the handle for migrations and seeding.
func (s *Store) DB() *gorm.DB { return s.db }

// storageErr maps gorm failures onto the domain error kinds.
func storageErr(op, kind, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(kind, id)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = fmt.Errorf("%w: %w", utils.ErrDuplicate, err)
	}
	return &utils.StorageError{Op: op, Err: err}
}

// likePattern builds a lower-cased LIKE pattern matching text anywhere.
func likePattern(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(text)) + "%"
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }
