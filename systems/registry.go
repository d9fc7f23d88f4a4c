package systems

import "fmt"

// System IDs double as perf timing keys.
const (
	IDTimers          = "timers"
	IDIntent          = "intent"
	IDFireControl     = "fireControl"
	IDEffectTriggers  = "effectTriggers"
	IDMovement        = "movement"
	IDSteering        = "steering"
	IDIntegrate       = "integrate"
	IDWrap            = "wrap"
	IDAttach          = "attach"
	IDPlayerAnimation = "playerAnimation"
	IDEffects         = "effects"
	IDDespawn         = "despawn"
	IDTelemetry       = "telemetry"
)

// SystemInfo names a system and the step phase it runs in.
type SystemInfo struct {
	ID    string
	Name  string
	Phase string
}

// defaultSystems is listed in run order.
var defaultSystems = []SystemInfo{
	{IDTimers, "Timers", "tick_timers"},

	{IDIntent, "Intent", "record_input"},
	{IDFireControl, "Fire Control", "record_input"},
	{IDEffectTriggers, "Effect Triggers", "record_input"},

	{IDMovement, "Movement", "update"},
	{IDSteering, "Steering", "update"},
	{IDIntegrate, "Integrate", "update"},
	{IDWrap, "Screen Wrap", "update"},
	{IDAttach, "Attachments", "update"},
	{IDPlayerAnimation, "Player Animation", "update"},
	{IDEffects, "Effects", "update"},

	{IDDespawn, "Despawn", "despawn"},

	{IDTelemetry, "Telemetry", "telemetry"},
}

// SystemRegistry resolves system IDs to display names and phases, so perf
// samples taken per system can be reported per phase.
type SystemRegistry struct {
	order []SystemInfo
	index map[string]int
}

// NewSystemRegistry returns a registry holding every simulation system.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{index: make(map[string]int, len(defaultSystems))}
	for _, info := range defaultSystems {
		r.Register(info)
	}
	return r
}

// Register appends a system. IDs must be unique.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, dup := r.index[info.ID]; dup {
		panic(fmt.Sprintf("system %q registered twice", info.ID))
	}
	r.index[info.ID] = len(r.order)
	r.order = append(r.order, info)
}

// Get looks up a system by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	i, ok := r.index[id]
	if !ok {
		return SystemInfo{}, false
	}
	return r.order[i], true
}

// Name returns the display name of id, or id itself when unknown.
func (r *SystemRegistry) Name(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

// Phase returns the phase id runs in. Unknown IDs form their own group.
func (r *SystemRegistry) Phase(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Phase
	}
	return id
}

// InPhase lists the IDs of the systems in phase, in run order.
func (r *SystemRegistry) InPhase(phase string) []string {
	var ids []string
	for _, info := range r.order {
		if info.Phase == phase {
			ids = append(ids, info.ID)
		}
	}
	return ids
}

// All returns every system in run order.
func (r *SystemRegistry) All() []SystemInfo { return r.order }
