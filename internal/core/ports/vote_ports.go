package ports

type MessageKind int

const (
	MessageSuccess MessageKind = iota
	MessageError
)

type VoteView interface {
	SetControlsEnabled(enabled bool)
	ShowMessage(kind MessageKind, text string)
	HideMessage()
}
