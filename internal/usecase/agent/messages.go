package agent

import (
	"fmt"
	"strings"
)

// User-facing replies the orchestrator substitutes for model output.
const (
	ReplyGarbled     = "⚠️ Sorry, something got garbled. Could you rephrase?"
	ReplyNotCaught   = "🤔 I'm here, but I didn't catch that. Could you rephrase?"
	ReplyTypeLocked  = "⚠️ The document is already drafted; changing its type now isn't allowed."
	ReplyDraftFailed = "⚠️ Drafting failed. Please try again."
	ReplyDraftReady  = "✅ Your document is ready. Tell me if anything should be changed."

	DefaultInstruction = "create fresh draft"

	unknownMissing = "some required details"
)

// StillMissingReply is sent once the user has been re-prompted the maximum number of times.
func StillMissingReply(desc string) string {
	return fmt.Sprintf("⚠️ The draft is still missing: %s. Continue when ready.", desc)
}

// MissingInfoReply pairs what is missing with a follow-up question.
func MissingInfoReply(desc, followUp string) string {
	reply := fmt.Sprintf("📝 To finish the draft I still need: %s.", desc)
	if followUp = strings.TrimSpace(followUp); followUp != "" {
		reply += "\n" + followUp
	}

	return reply
}

func missingInfoNote(desc, askUser string) string {
	note := fmt.Sprintf("The latest draft is incomplete. Missing: %s. "+
		"Ask the user one concise question to collect exactly this information.", desc)
	if askUser != "" {
		note += " Suggested question: " + askUser
	}

	return note
}
