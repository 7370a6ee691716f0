package models

type Operation struct {
	ID            uint64  `gorm:"primarykey" json:"id"`
	OrderID       uint64  `gorm:"not null;uniqueIndex:idx_operations_order_code" json:"order_id"`
	OperationCode string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_operations_order_code" json:"operation_code"`
	MachineID     *uint64 `gorm:"index" json:"machine_id"`

	// Relations
	Order   Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Machine *Machine `gorm:"foreignKey:MachineID" json:"machine,omitempty"`
	Tasks   []Task   `gorm:"foreignKey:OperationID" json:"tasks,omitempty"`
}
