package handlers

import "gorm.io/gorm"

type ReorderItem struct {
	ID            uint `json:"id" binding:"required"`
	OrderPriority int  `json:"order_priority"`
}

type ReorderRequest struct {
	Items []ReorderItem `json:"items" binding:"required,min=1,dive"`
}

// applyReorder writes the new priorities in one transaction so a partial
// reorder never becomes visible.
func applyReorder(db *gorm.DB, model any, req ReorderRequest) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			if err := tx.Model(model).
				Where("id = ?", item.ID).
				UpdateColumn("order_priority", item.OrderPriority).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
