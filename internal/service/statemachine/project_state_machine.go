package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// ProjectStatus 项目发布状态
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusPublished ProjectStatus = "PUBLISHED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

// PublishChange 一次迁移对公开页面的影响
type PublishChange int

const (
	PublishUnchanged PublishChange = iota
	PublishOn                      // 页面开始对外可见
	PublishOff                     // 页面不再对外可见
)

// ProjectTransition 定义项目状态迁移
type ProjectTransition struct {
	From ProjectStatus
	To   ProjectStatus
}

// ProjectStateMachine 项目状态机，三个状态之间可以任意切换
type ProjectStateMachine struct {
	allowedTransitions map[ProjectTransition]bool
}

// NewProjectStateMachine 创建项目状态机
func NewProjectStateMachine() *ProjectStateMachine {
	sm := &ProjectStateMachine{
		allowedTransitions: make(map[ProjectTransition]bool),
	}
	all := []ProjectStatus{ProjectStatusDraft, ProjectStatusPublished, ProjectStatusArchived}
	for _, from := range all {
		for _, to := range all {
			sm.allowedTransitions[ProjectTransition{From: from, To: to}] = true
		}
	}
	return sm
}

// CanTransition 检查状态迁移是否合法，相同状态视为合法的空操作
func (sm *ProjectStateMachine) CanTransition(from, to ProjectStatus) bool {
	return sm.allowedTransitions[ProjectTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *ProjectStateMachine) ValidateTransition(from, to ProjectStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidProjectStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 校验迁移并返回发布状态变化（带日志）
func (sm *ProjectStateMachine) Transition(from, to ProjectStatus, projectID string) (PublishChange, error) {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("项目状态迁移被拒绝: projectID=%s, %s -> %s, error=%v", projectID, from, to, err)
		return PublishUnchanged, err
	}

	change := PublishUnchanged
	switch {
	case from != ProjectStatusPublished && to == ProjectStatusPublished:
		change = PublishOn
	case from == ProjectStatusPublished && to != ProjectStatusPublished:
		change = PublishOff
	}

	klog.V(6).Infof("项目状态迁移成功: projectID=%s, %s -> %s", projectID, from, to)
	return change, nil
}

// InvalidProjectStateTransitionError 无效的项目状态迁移错误
type InvalidProjectStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidProjectStateTransitionError) Error() string {
	return fmt.Sprintf("invalid project state transition: %s -> %s", e.From, e.To)
}
