package model

// 教学周范围：一学期固定 18 个教学周
const (
	MinWeek = 1
	MaxWeek = 18
)

// Course 课程表 — 对应 courses
// 唯一约束 (user_id, day_of_week, period_slot, week) 是冲突不变量的最终权威：
// 排课前的冲突扫描负责生成完整冲突清单，约束负责兜住扫描与写入之间的并发写。
type Course struct {
	CourseID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:uniq_courses_slot" json:"user_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Teacher    string `gorm:"type:varchar(100);not null"                     json:"teacher"`
	DayOfWeek  int    `gorm:"type:smallint;not null;uniqueIndex:uniq_courses_slot" json:"day_of_week"` // 1-7（周一至周日）
	PeriodSlot string `gorm:"type:varchar(10);not null;uniqueIndex:uniq_courses_slot" json:"period_slot"`
	Location   string `gorm:"type:varchar(100);not null"                     json:"location"`
	Week       int    `gorm:"type:smallint;not null;uniqueIndex:uniq_courses_slot" json:"week"` // 1-18
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// ── 节次 ──

// PeriodSlotInfo 节次定义：标识、显示名与上课时间
type PeriodSlotInfo struct {
	Slot      string // 存储标识，如 "1-2"
	Label     string // 显示名，如 "第1-2节"
	TimeRange string // 上课时间，如 "08:00-09:40"
}

// PeriodSlots 固定节次表，按一天内的先后顺序排列
var PeriodSlots = []PeriodSlotInfo{
	{Slot: "1-2", Label: "第1-2节", TimeRange: "08:00-09:40"},
	{Slot: "3-4", Label: "第3-4节", TimeRange: "10:00-11:40"},
	{Slot: "5-6", Label: "第5-6节", TimeRange: "14:00-15:40"},
	{Slot: "7-8", Label: "第7-8节", TimeRange: "16:00-17:40"},
	{Slot: "9-10", Label: "第9-10节", TimeRange: "19:00-20:40"},
}

// ValidPeriodSlot 判断节次标识是否在固定节次表中
func ValidPeriodSlot(slot string) bool {
	for _, p := range PeriodSlots {
		if p.Slot == slot {
			return true
		}
	}
	return false
}

// PeriodSlotLabel 返回节次显示名；未知节次返回原值
func PeriodSlotLabel(slot string) string {
	for _, p := range PeriodSlots {
		if p.Slot == slot {
			return p.Label
		}
	}
	return slot
}

// ── 星期 ──

// DayNames 星期显示名，下标 = day_of_week（1-7）
var DayNames = [8]string{"", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"}

// ValidDayOfWeek 判断星期取值是否合法
func ValidDayOfWeek(day int) bool { return day >= 1 && day <= 7 }

// ValidWeek 判断教学周取值是否合法
func ValidWeek(week int) bool { return week >= MinWeek && week <= MaxWeek }
