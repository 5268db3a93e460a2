package systems

import "sort"

// ScheduledTask 一个延迟执行的回调
type ScheduledTask struct {
	name      string
	fireAt    float64
	seq       uint64
	fn        func()
	cancelled bool
	done      bool
}

// Cancel 取消尚未触发的回调（已触发或已取消时为空操作）
func (t *ScheduledTask) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Done 回调是否已经执行
func (t *ScheduledTask) Done() bool {
	return t.done
}

// Cancelled 回调是否已被取消
func (t *ScheduledTask) Cancelled() bool {
	return t.cancelled
}

// Name 回调名称（日志用）
func (t *ScheduledTask) Name() string {
	return t.name
}

// ScheduleSystem 延迟回调调度器
//
// 由游戏主循环每帧调用 Update(dt) 推进时钟，到期的回调按调度顺序执行。
// 这只是纯时间延续，不会阻塞；回调执行时必须自行检查所引用的对象是否仍然有效。
type ScheduleSystem struct {
	now     float64
	nextSeq uint64
	tasks   []*ScheduledTask
	due     []*ScheduledTask // 本次 Update 正在执行的回调
}

// NewScheduleSystem 创建调度器
func NewScheduleSystem() *ScheduleSystem {
	return &ScheduleSystem{}
}

// Now 返回调度器累计时间（秒）
func (s *ScheduleSystem) Now() float64 {
	return s.now
}

// After 在 delay 秒后执行 fn
// delay <= 0 的回调在下一次 Update 时执行
func (s *ScheduleSystem) After(name string, delay float64, fn func()) *ScheduledTask {
	if delay < 0 {
		delay = 0
	}
	task := &ScheduledTask{
		name:   name,
		fireAt: s.now + delay,
		seq:    s.nextSeq,
		fn:     fn,
	}
	s.nextSeq++
	s.tasks = append(s.tasks, task)
	return task
}

// Update 推进时钟并执行所有到期的回调
//
// 回调内新调度的任务最早在下一次 Update 执行
func (s *ScheduleSystem) Update(dt float64) {
	s.now += dt

	var due []*ScheduledTask
	remaining := s.tasks[:0]
	for _, task := range s.tasks {
		switch {
		case task.cancelled:
			// 丢弃
		case task.fireAt <= s.now:
			due = append(due, task)
		default:
			remaining = append(remaining, task)
		}
	}
	// 清理尾部引用
	for i := len(remaining); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = remaining

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].fireAt != due[j].fireAt {
			return due[i].fireAt < due[j].fireAt
		}
		return due[i].seq < due[j].seq
	})

	s.due = due
	for _, task := range due {
		if task.cancelled {
			continue
		}
		task.done = true
		task.fn()
	}
	s.due = nil
}

// CancelAll 取消所有尚未触发的回调
func (s *ScheduleSystem) CancelAll() {
	for _, task := range s.tasks {
		task.cancelled = true
	}
	for _, task := range s.due {
		if !task.done {
			task.cancelled = true
		}
	}
	s.tasks = nil
}

// Pending 返回尚未触发也未取消的回调数量
func (s *ScheduleSystem) Pending() int {
	n := 0
	for _, task := range s.tasks {
		if !task.cancelled {
			n++
		}
	}
	return n
}
