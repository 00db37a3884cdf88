package chat

import (
	"strconv"
	"strings"
)

// ActionKind identifies an inline button. Buttons carrying data encode it as
// "kind:value".
type ActionKind string

const (
	ActShowMainMenu  ActionKind = "show_main_menu"
	ActShowProfile   ActionKind = "show_profile"
	ActShowCoins     ActionKind = "show_coins"
	ActAnonymousChat ActionKind = "chat_anonymous_placeholder"
	ActSubmitReview  ActionKind = "submit_feedback_placeholder"
	ActNearbyReviews ActionKind = "view_feedback_placeholder"

	ActEnterName    ActionKind = "enter_name_scene"
	ActEnterAge     ActionKind = "enter_age_scene"
	ActSelectSchool ActionKind = "select_school_scene"
	ActEnterPhone   ActionKind = "enter_phone_scene"

	ActRefreshJoin ActionKind = "refresh_join_status"

	ActAdminPanel     ActionKind = "admin_panel_action"
	ActManageChannels ActionKind = "admin_manage_channels"
	ActManageSchools  ActionKind = "admin_manage_schools"
	ActPromoteChat    ActionKind = "promo_chat"

	ActGender         ActionKind = "gender"
	ActProvince       ActionKind = "province"
	ActCity           ActionKind = "city"
	ActSchool         ActionKind = "school"
	ActConfirmChannel ActionKind = "confirm_add_channel"
	ActCancelChannel  ActionKind = "cancel_add_channel"
	ActFinishSchools  ActionKind = "finish_add_schools"
	ActCancelSchools  ActionKind = "cancel_school_mgmt"
)

// Action is a parsed button press.
type Action struct {
	Kind  ActionKind
	Value string
}

// NewAction builds an action with an optional value.
func NewAction(kind ActionKind, value ...string) Action {
	a := Action{Kind: kind}
	if len(value) > 0 {
		a.Value = value[0]
	}
	return a
}

// IntAction builds an action carrying a number.
func IntAction(kind ActionKind, v int64) Action {
	return Action{Kind: kind, Value: strconv.FormatInt(v, 10)}
}

// ParseAction decodes callback data. Unknown kinds are kept as is and left to
// the router to ignore.
func ParseAction(data string) Action {
	kind, value, _ := strings.Cut(data, ":")
	return Action{Kind: ActionKind(kind), Value: value}
}

// Data encodes the action as callback data.
func (a Action) Data() string {
	if a.Value == "" {
		return string(a.Kind)
	}
	return string(a.Kind) + ":" + a.Value
}

// Int64 parses the value as a number.
func (a Action) Int64() (int64, bool) {
	v, err := strconv.ParseInt(a.Value, 10, 64)
	return v, err == nil
}
