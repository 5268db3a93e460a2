package systems

import (
	"fmt"
	"log"
	"sort"
)

// ProgressionPolicy 故事推进策略
type ProgressionPolicy int

const (
	// PolicySequential 必须按 0..N-1 的顺序完成，只有当前步骤的种类可以推进
	PolicySequential ProgressionPolicy = iota
	// PolicyAnyOrder 任意顺序完成，已完成集合与顺序无关
	PolicyAnyOrder
)

// String 返回策略在配置文件中的名称
func (p ProgressionPolicy) String() string {
	switch p {
	case PolicySequential:
		return "sequential"
	case PolicyAnyOrder:
		return "anyOrder"
	default:
		return fmt.Sprintf("ProgressionPolicy(%d)", int(p))
	}
}

// ParseProgressionPolicy 解析配置文件中的策略名称
func ParseProgressionPolicy(s string) (ProgressionPolicy, error) {
	switch s {
	case "", "sequential":
		return PolicySequential, nil
	case "anyOrder":
		return PolicyAnyOrder, nil
	default:
		return PolicySequential, fmt.Errorf("unknown progression policy %q (expected \"sequential\" or \"anyOrder\")", s)
	}
}

// ProgressionSystem 故事推进状态机（修房间的线性步骤）
//
// 状态：当前步骤 ∈ [0, totalSteps) 以及终态 AllComplete。
// 重复的完成信号、越界种类以及终态之后的调用都是安全的空操作。
type ProgressionSystem struct {
	policy      ProgressionPolicy
	totalSteps  int
	currentStep int
	completed   map[int]bool
	allComplete bool

	// OnStepCompleted 某个合成链完成时回调
	OnStepCompleted func(kind int)
	// OnAllComplete 所有步骤完成时回调（只触发一次）
	OnAllComplete func()
}

// NewProgressionSystem 创建故事推进系统
// 参数:
//   - totalSteps: 步骤总数（必须 > 0）
//   - policy: 推进策略
func NewProgressionSystem(totalSteps int, policy ProgressionPolicy) *ProgressionSystem {
	if totalSteps <= 0 {
		panic(fmt.Sprintf("systems: totalSteps must be > 0, got %d", totalSteps))
	}
	return &ProgressionSystem{
		policy:     policy,
		totalSteps: totalSteps,
		completed:  make(map[int]bool, totalSteps),
	}
}

// Policy 返回推进策略
func (p *ProgressionSystem) Policy() ProgressionPolicy {
	return p.policy
}

// TotalSteps 返回步骤总数
func (p *ProgressionSystem) TotalSteps() int {
	return p.totalSteps
}

// CurrentStep 返回当前步骤索引
// 全部完成后返回 totalSteps
func (p *ProgressionSystem) CurrentStep() int {
	return p.currentStep
}

// IsAllComplete 是否已全部完成
func (p *ProgressionSystem) IsAllComplete() bool {
	return p.allComplete
}

// IsCompleted 指定种类是否已完成
func (p *ProgressionSystem) IsCompleted(kind int) bool {
	return p.completed[kind]
}

// CompletedKinds 返回已完成的种类（升序）
func (p *ProgressionSystem) CompletedKinds() []int {
	kinds := make([]int, 0, len(p.completed))
	for k := range p.completed {
		kinds = append(kinds, k)
	}
	sort.Ints(kinds)
	return kinds
}

// CanWork 指定种类当前是否可以生成/合成推进
//
//   - Sequential: 只有当前步骤的种类
//   - AnyOrder: 任何尚未完成的有效种类
func (p *ProgressionSystem) CanWork(kind int) bool {
	if p.allComplete || !p.validKind(kind) {
		return false
	}
	if p.policy == PolicySequential {
		return kind == p.currentStep
	}
	return !p.completed[kind]
}

// Complete 记录某个合成链完成
//
// 返回：
//   - bool: true 表示状态发生了变化；重复/无效/乱序的完成信号返回 false
func (p *ProgressionSystem) Complete(kind int) bool {
	if p.allComplete {
		log.Printf("[ProgressionSystem] Ignoring completion of kind %d: already all complete", kind)
		return false
	}
	if !p.validKind(kind) {
		log.Printf("[ProgressionSystem] Ignoring completion of out-of-range kind %d (total %d)", kind, p.totalSteps)
		return false
	}
	if p.completed[kind] {
		log.Printf("[ProgressionSystem] Ignoring duplicate completion of kind %d", kind)
		return false
	}
	if p.policy == PolicySequential && kind != p.currentStep {
		log.Printf("[ProgressionSystem] Ignoring out-of-order completion of kind %d (current step %d)", kind, p.currentStep)
		return false
	}

	p.completed[kind] = true
	if kind == p.currentStep {
		p.currentStep = p.nextIncomplete(kind)
	}
	// 回调触发前状态已经完整更新，OnStepCompleted 中可以查询 IsAllComplete
	justFinished := len(p.completed) == p.totalSteps
	if justFinished {
		p.allComplete = true
		p.currentStep = p.totalSteps
	}
	log.Printf("[ProgressionSystem] Kind %d completed (%d/%d), current step = %d",
		kind, len(p.completed), p.totalSteps, p.currentStep)

	if p.OnStepCompleted != nil {
		p.OnStepCompleted(kind)
	}
	if justFinished {
		log.Printf("[ProgressionSystem] All %d steps complete", p.totalSteps)
		if p.OnAllComplete != nil {
			p.OnAllComplete()
		}
	}
	return true
}

// Restore 从存档恢复已完成的种类（不触发回调）
func (p *ProgressionSystem) Restore(completed []int) {
	p.completed = make(map[int]bool, p.totalSteps)
	p.allComplete = false
	p.currentStep = 0

	for _, k := range completed {
		if p.validKind(k) {
			p.completed[k] = true
		}
	}

	if len(p.completed) == p.totalSteps {
		p.allComplete = true
		p.currentStep = p.totalSteps
		return
	}
	if p.completed[0] {
		p.currentStep = p.nextIncomplete(0)
	}
}

// nextIncomplete 从 from 之后寻找下一个未完成的步骤（到末尾后回绕）
func (p *ProgressionSystem) nextIncomplete(from int) int {
	for i := 1; i <= p.totalSteps; i++ {
		step := (from + i) % p.totalSteps
		if !p.completed[step] {
			return step
		}
	}
	return p.totalSteps
}

func (p *ProgressionSystem) validKind(kind int) bool {
	return kind >= 0 && kind < p.totalSteps
}
