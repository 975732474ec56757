// Package entity defines the task list domain model.
package entity

import "time"

// ListType categorizes a task list and drives its default icon and color.
type ListType string

const (
	ListTypePersonal ListType = "PERSONAL"
	ListTypeWork     ListType = "WORK"
	ListTypeMovie    ListType = "MOVIE"
	ListTypeShopping ListType = "SHOPPING"
	ListTypeSport    ListType = "SPORT"
	ListTypeEvent    ListType = "EVENT"
	ListTypeStudy    ListType = "STUDY"
	ListTypeTravel   ListType = "TRAVEL"
	ListTypeHealth   ListType = "HEALTH"
	ListTypeCustom   ListType = "CUSTOM"
)

// ListTypeInfo describes one selectable list type for clients.
type ListTypeInfo struct {
	Type         ListType `json:"type"`
	Icon         string   `json:"icon"`
	DefaultColor string   `json:"defaultColor"`
}

// listTypeCatalog is ordered so /types responses stay stable.
var listTypeCatalog = []ListTypeInfo{
	{ListTypePersonal, "person_outline", "#6B66FF"},
	{ListTypeWork, "work_outline", "#FF6B6B"},
	{ListTypeMovie, "movie", "#66FF6B"},
	{ListTypeShopping, "shopping_cart", "#FFB366"},
	{ListTypeSport, "sports_basketball", "#66B3FF"},
	{ListTypeEvent, "event_note", "#FF66B3"},
	{ListTypeStudy, "school", "#B366FF"},
	{ListTypeTravel, "flight", "#66FFB3"},
	{ListTypeHealth, "favorite", "#FF6666"},
	{ListTypeCustom, "star_outline", "#808080"},
}

// ListTypes returns the catalog of available list types.
func ListTypes() []ListTypeInfo {
	out := make([]ListTypeInfo, len(listTypeCatalog))
	copy(out, listTypeCatalog)
	return out
}

// Valid reports whether t is one of the known list types.
func (t ListType) Valid() bool {
	for _, info := range listTypeCatalog {
		if info.Type == t {
			return true
		}
	}
	return false
}

// info returns the catalog entry for t, falling back to CUSTOM.
func (t ListType) info() ListTypeInfo {
	for _, i := range listTypeCatalog {
		if i.Type == t {
			return i
		}
	}
	return listTypeCatalog[len(listTypeCatalog)-1]
}

// TaskList represents a named collection of tasks owned by a single user.
type TaskList struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"size:50;not null" json:"name"`
	ListType    ListType `gorm:"size:16;not null;default:PERSONAL" json:"listType"`
	Icon        string   `gorm:"size:64" json:"icon"`
	CustomIcon  string   `gorm:"size:64" json:"customIcon,omitempty"`
	Color       string   `gorm:"size:16" json:"color"`
	Description string   `gorm:"size:200" json:"description,omitempty"`
	UserID      uint     `gorm:"index;not null" json:"-"`
	IsArchived  bool     `gorm:"not null;default:false" json:"isArchived"`
	IsPinned    bool     `gorm:"not null;default:false" json:"isPinned"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Aggregates filled in by the repository, not stored.
	TaskCount          int64 `gorm:"-" json:"taskCount"`
	CompletedTaskCount int64 `gorm:"-" json:"completedTaskCount"`
}

// ApplyDefaults fills the icon and color from the list type when the caller
// left them blank. A custom icon wins over the catalog icon.
func (l *TaskList) ApplyDefaults() {
	info := l.ListType.info()
	if l.Icon == "" {
		if l.CustomIcon != "" {
			l.Icon = l.CustomIcon
		} else {
			l.Icon = info.Icon
		}
	}
	if l.Color == "" {
		l.Color = info.DefaultColor
	}
}
