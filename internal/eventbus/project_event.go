package eventbus

type ProjectEventType string

const (
	ProjectEventCreated     ProjectEventType = "ProjectCreated"
	ProjectEventPublished   ProjectEventType = "ProjectPublished"
	ProjectEventUnpublished ProjectEventType = "ProjectUnpublished"
)

type ProjectEvent struct {
	Type      ProjectEventType
	ProjectID string
	ClientID  string
	Slug      string
	Status    string
}

type ProjectEventHandler = Handler[ProjectEvent]
type ProjectEventBus = Bus[ProjectEventType, ProjectEvent]

func NewProjectEventBus() *ProjectEventBus {
	return NewBus[ProjectEventType, ProjectEvent]()
}
