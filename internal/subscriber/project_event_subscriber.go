package subscriber

import (
	"context"
	"fmt"

	"github.com/weibaohui/landingkit/internal/eventbus"
	"github.com/weibaohui/landingkit/internal/model"
	"github.com/weibaohui/landingkit/internal/repository"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"
)

type ProjectEventSubscriber struct {
	variantRepo repository.VariantRepository
}

func NewProjectEventSubscriber(variantRepo repository.VariantRepository) *ProjectEventSubscriber {
	return &ProjectEventSubscriber{variantRepo: variantRepo}
}

func (s *ProjectEventSubscriber) Register(bus *eventbus.ProjectEventBus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.ProjectEventCreated, s.handleProjectCreated)
	bus.Subscribe(eventbus.ProjectEventPublished, s.handlePublishChanged)
	bus.Subscribe(eventbus.ProjectEventUnpublished, s.handlePublishChanged)
}

// handleProjectCreated 新项目默认带一个 DEFAULT 流量变体
func (s *ProjectEventSubscriber) handleProjectCreated(ctx context.Context, event eventbus.ProjectEvent) error {
	variant := &model.Variant{
		ProjectID:     event.ProjectID,
		TrafficSource: model.TrafficSourceDefault,
		Content:       datatypes.NewJSONType(model.ProjectContent{}),
		IsActive:      true,
	}
	if err := s.variantRepo.Create(ctx, variant); err != nil {
		klog.Errorf("[ProjectEvent] 创建默认变体失败: projectID=%s, err=%v", event.ProjectID, err)
		return fmt.Errorf("create default variant: %w", err)
	}
	klog.V(6).Infof("[ProjectEvent] 默认变体已创建: projectID=%s, variantID=%s", event.ProjectID, variant.ID)
	return nil
}

func (s *ProjectEventSubscriber) handlePublishChanged(ctx context.Context, event eventbus.ProjectEvent) error {
	klog.Infof("[ProjectEvent] 项目发布状态变更: type=%s, projectID=%s, slug=%s, status=%s", event.Type, event.ProjectID, event.Slug, event.Status)
	return nil
}
