package storage

import (
	"errors"

	"gorm.io/gorm"

	"lecture-scribe/internal/types"
)

func SaveTask(task *types.ExtractionTask) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	// Upsert keyed by TaskId: the numeric primary key is internal only.
	var existing types.ExtractionTask
	result := DB.Where("task_id = ?", task.TaskId).First(&existing)

	if result.Error == nil {
		task.Id = existing.Id // Preserve ID
		return DB.Save(task).Error
	} else if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return DB.Create(task).Error
	}
	return result.Error
}

func GetTask(taskId string) (*types.ExtractionTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var task types.ExtractionTask
	if err := DB.Preload("VideoResults").Where("task_id = ?", taskId).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func GetTaskHistory(limit int) ([]types.ExtractionTask, error) {
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	var tasks []types.ExtractionTask
	if err := DB.Preload("VideoResults").Order("create_time desc").Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func DeleteTask(taskId string) error {
	if DB == nil {
		return errors.New("database not initialized")
	}
	if err := DB.Where("task_id = ?", taskId).Delete(&types.VideoResult{}).Error; err != nil {
		return err
	}
	return DB.Where("task_id = ?", taskId).Delete(&types.ExtractionTask{}).Error
}

// MarkStaleTasks marks all "processing" tasks as "failed". Called on server
// startup to clean up tasks orphaned by a crash or restart.
func MarkStaleTasks() (int64, error) {
	if DB == nil {
		return 0, errors.New("database not initialized")
	}
	result := DB.Model(&types.ExtractionTask{}).
		Where("status = ?", types.TaskStatusProcessing).
		Updates(map[string]interface{}{
			"status":      types.TaskStatusFailed,
			"fail_reason": "Task interrupted by server restart",
			"status_msg":  "Interrupted",
		})
	return result.RowsAffected, result.Error
}
