package dao

import (
	"fmt"

	"gorm.io/gorm"
)

// Membership rows live in plain join tables. They are read and written
// directly so attaching never touches the linked records themselves.

type linkRow struct {
	Owner uint
	Other uint
}

func loadLinks(tx *gorm.DB, join, ownerCol, otherCol string, owners []uint) (map[uint][]uint, error) {
	out := make(map[uint][]uint, len(owners))
	if len(owners) == 0 {
		return out, nil
	}

	var rows []linkRow
	err := tx.Table(join).
		Select(ownerCol+" AS owner, "+otherCol+" AS other").
		Where(ownerCol+" IN ?", owners).
		Order(ownerCol).Order(otherCol).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load %s -> %w", join, err)
	}

	for _, r := range rows {
		out[r.Owner] = append(out[r.Owner], r.Other)
	}

	return out, nil
}

func replaceLinks(tx *gorm.DB, join, ownerCol, otherCol string, owner uint, others []uint) error {
	if err := tx.Exec("DELETE FROM "+join+" WHERE "+ownerCol+" = ?", owner).Error; err != nil {
		return fmt.Errorf("clear %s -> %w", join, err)
	}

	rows := make([]map[string]interface{}, 0, len(others))
	seen := make(map[uint]bool, len(others))
	for _, id := range others {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, map[string]interface{}{ownerCol: owner, otherCol: id})
	}
	if len(rows) == 0 {
		return nil
	}

	if err := tx.Table(join).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert %s -> %w", join, err)
	}

	return nil
}

// addLink is a no-op when the pair already exists.
func addLink(tx *gorm.DB, join, ownerCol, otherCol string, owner, other uint) error {
	var n int64
	err := tx.Table(join).
		Where(ownerCol+" = ? AND "+otherCol+" = ?", owner, other).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("count %s -> %w", join, err)
	}
	if n > 0 {
		return nil
	}

	row := map[string]interface{}{ownerCol: owner, otherCol: other}
	if err = tx.Table(join).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("insert %s -> %w", join, err)
	}

	return nil
}
