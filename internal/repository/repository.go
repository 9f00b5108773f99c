package repository

import (
	"errors"

	"github.com/weibaohui/landingkit/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

// notFound 把 gorm 的未找到错误统一转换为 ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type countRow struct {
	GroupKey string
	Total    int64
}

// countProjectsBy 按 column 分组统计项目数量
func countProjectsBy(db *gorm.DB, column string, keys []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return counts, nil
	}
	var rows []countRow
	err := db.Model(&model.Project{}).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", keys).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.GroupKey] = row.Total
	}
	return counts, nil
}
