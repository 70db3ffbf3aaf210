package models

// VapeDeviceType is the kind of device the user vapes with
type VapeDeviceType string

const (
	DeviceDisposable VapeDeviceType = "Disposable"
	DevicePodSystem  VapeDeviceType = "Pod System"
	DeviceModTank    VapeDeviceType = "Mod/Tank"
	DeviceOther      VapeDeviceType = "Other"
)

// QuitMethod is a strategy the user opted into during onboarding
type QuitMethod string

const (
	MethodGradualReduction QuitMethod = "Gradual Reduction"
	MethodTriggerTracking  QuitMethod = "Trigger Tracking"
	MethodColdTurkey       QuitMethod = "Cold Turkey"
	MethodNRTTracking      QuitMethod = "NRT Tracking"
	MethodGamification     QuitMethod = "Gamification"
)

// NotificationPreference controls how often reminders are scheduled
type NotificationPreference string

const (
	NotifyOften          NotificationPreference = "Encourage me often"
	NotifyBalanced       NotificationPreference = "Just the essentials"
	NotifyMilestonesOnly NotificationPreference = "Only milestones"
)

// CravingTrigger is what set off a craving
type CravingTrigger string

const (
	TriggerStress      CravingTrigger = "Stress"
	TriggerBoredom     CravingTrigger = "Boredom"
	TriggerSocial      CravingTrigger = "Social"
	TriggerHabit       CravingTrigger = "Habit"
	TriggerAfterMeal   CravingTrigger = "After Meal"
	TriggerAnxiety     CravingTrigger = "Anxiety"
	TriggerCelebration CravingTrigger = "Celebration"
	TriggerOther       CravingTrigger = "Other"
)

// CravingAction is how the user responded to a craving
type CravingAction string

const (
	ActionVaped             CravingAction = "Vaped"
	ActionResisted          CravingAction = "Resisted"
	ActionUsedNRT           CravingAction = "Used NRT"
	ActionBreathingExercise CravingAction = "Breathing Exercise"
	ActionOther             CravingAction = "Other"
)

// NRTType is a nicotine replacement product
type NRTType string

const (
	NRTPatch   NRTType = "Patch"
	NRTGum     NRTType = "Gum"
	NRTLozenge NRTType = "Lozenge"
	NRTOther   NRTType = "Other"
)

// MilestoneType groups milestone definitions
type MilestoneType string

const (
	MilestoneHealth    MilestoneType = "Health"
	MilestoneFinancial MilestoneType = "Financial"
	MilestoneStreak    MilestoneType = "Streak"
)

// Info is display metadata attached to an enum variant.
type Info struct {
	Icon        string
	Description string
}

var (
	DeviceTypes = []VapeDeviceType{DeviceDisposable, DevicePodSystem, DeviceModTank, DeviceOther}

	QuitMethods = []QuitMethod{
		MethodGradualReduction, MethodTriggerTracking, MethodColdTurkey, MethodNRTTracking, MethodGamification,
	}

	NotificationPreferences = []NotificationPreference{NotifyOften, NotifyBalanced, NotifyMilestonesOnly}

	CravingTriggers = []CravingTrigger{
		TriggerStress, TriggerBoredom, TriggerSocial, TriggerHabit,
		TriggerAfterMeal, TriggerAnxiety, TriggerCelebration, TriggerOther,
	}

	CravingActions = []CravingAction{
		ActionVaped, ActionResisted, ActionUsedNRT, ActionBreathingExercise, ActionOther,
	}

	NRTTypes = []NRTType{NRTPatch, NRTGum, NRTLozenge, NRTOther}
)

var deviceInfo = map[VapeDeviceType]Info{
	DeviceDisposable: {Icon: "🔥"},
	DevicePodSystem:  {Icon: "📱"},
	DeviceModTank:    {Icon: "🔧"},
	DeviceOther:      {Icon: "❓"},
}

var methodInfo = map[QuitMethod]Info{
	MethodGradualReduction: {Icon: "📉", Description: "Slowly reduce your daily puffs and nicotine strength over weeks"},
	MethodTriggerTracking:  {Icon: "🧠", Description: "Identify your triggers and build healthier habits to replace vaping"},
	MethodColdTurkey:       {Icon: "✋", Description: "Pick a quit date and stop completely with withdrawal support"},
	MethodNRTTracking:      {Icon: "💊", Description: "Track patches, gum, or lozenges alongside your vape reduction"},
	MethodGamification:     {Icon: "🏆", Description: "Stay motivated with streaks, badges, and milestone rewards"},
}

// Description holds the coping suggestion for triggers.
var triggerInfo = map[CravingTrigger]Info{
	TriggerStress:      {Icon: "😤", Description: "Try a 2-minute box breathing exercise"},
	TriggerBoredom:     {Icon: "😴", Description: "Take a short walk or stretch"},
	TriggerSocial:      {Icon: "👥", Description: "Hold a drink or keep your hands busy"},
	TriggerHabit:       {Icon: "🔁", Description: "Try a fidget toy or chew gum"},
	TriggerAfterMeal:   {Icon: "🍽️", Description: "Brush your teeth or chew mint gum"},
	TriggerAnxiety:     {Icon: "⚠️", Description: "Try the 5-4-3-2-1 grounding technique"},
	TriggerCelebration: {Icon: "🎉", Description: "Celebrate with your favorite snack instead"},
	TriggerOther:       {Icon: "💭", Description: "Take 5 deep breaths and wait 2 minutes"},
}

var actionInfo = map[CravingAction]Info{
	ActionVaped:             {Icon: "💨"},
	ActionResisted:          {Icon: "🛡️"},
	ActionUsedNRT:           {Icon: "💊"},
	ActionBreathingExercise: {Icon: "🌬️"},
	ActionOther:             {Icon: "💭"},
}

var nrtInfo = map[NRTType]Info{
	NRTPatch:   {Icon: "🩹"},
	NRTGum:     {Icon: "🫧"},
	NRTLozenge: {Icon: "💊"},
	NRTOther:   {Icon: "💉"},
}

var milestoneTypeInfo = map[MilestoneType]Info{
	MilestoneHealth:    {Icon: "❤️"},
	MilestoneFinancial: {Icon: "💵"},
	MilestoneStreak:    {Icon: "🔥"},
}

func (d VapeDeviceType) Info() Info { return deviceInfo[d] }
func (d VapeDeviceType) Valid() bool {
	_, ok := deviceInfo[d]
	return ok
}

func (m QuitMethod) Info() Info { return methodInfo[m] }
func (m QuitMethod) Valid() bool {
	_, ok := methodInfo[m]
	return ok
}

func (p NotificationPreference) Valid() bool {
	switch p {
	case NotifyOften, NotifyBalanced, NotifyMilestonesOnly:
		return true
	}
	return false
}

func (t CravingTrigger) Info() Info { return triggerInfo[t] }
func (t CravingTrigger) Valid() bool {
	_, ok := triggerInfo[t]
	return ok
}

// Suggestion returns the coping tip shown after logging a craving with this trigger.
func (t CravingTrigger) Suggestion() string { return triggerInfo[t].Description }

func (a CravingAction) Info() Info { return actionInfo[a] }
func (a CravingAction) Valid() bool {
	_, ok := actionInfo[a]
	return ok
}

// Resisted reports whether the craving passed without vaping.
func (a CravingAction) Resisted() bool { return a != ActionVaped }

func (n NRTType) Info() Info { return nrtInfo[n] }
func (n NRTType) Valid() bool {
	_, ok := nrtInfo[n]
	return ok
}

func (m MilestoneType) Info() Info { return milestoneTypeInfo[m] }
