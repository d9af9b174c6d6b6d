package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"telegram-bonus-verify/internal/usecase"
)

// Responder shapes the issuance and status results for a particular caller.
// The two logical operations are identical across surfaces; only the JSON
// envelope differs.
type Responder interface {
	Issue(w http.ResponseWriter, iss *usecase.Issued)
	Status(w http.ResponseWriter, st usecase.Status)
	Error(w http.ResponseWriter, code int, msg string)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusResult maps a Status onto the four reportable outcomes.
func statusResult(st usecase.Status) string {
	switch {
	case !st.Found:
		return "not_found"
	case st.Expired:
		return "expired"
	case st.Verified:
		return "verified"
	default:
		return "pending"
	}
}

// --- flat JSON surface (/api/v1/...) ---

type plainResponder struct{}

var _ Responder = plainResponder{}

func (plainResponder) Issue(w http.ResponseWriter, iss *usecase.Issued) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bonus_code":    iss.Token,
		"telegram_link": iss.Link,
		"expires_in":    int(iss.TTL.Seconds()),
	})
}

func (plainResponder) Status(w http.ResponseWriter, st usecase.Status) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"found":    st.Found,
		"verified": st.Verified,
		"expired":  st.Expired,
	})
}

func (plainResponder) Error(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// --- ChatBot.com surface (/api/bonus/...) ---
//
// The vendor wants {responses: [{type, message}], attributes: {...}} with
// every attribute value a string, so the widget can store them verbatim.

type chatbotResponder struct{}

var _ Responder = chatbotResponder{}

type chatbotResponse struct {
	Responses  []chatbotMessage  `json:"responses"`
	Attributes map[string]string `json:"attributes"`
}

type chatbotMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (chatbotResponder) Issue(w http.ResponseWriter, iss *usecase.Issued) {
	writeJSON(w, http.StatusOK, chatbotResponse{
		Responses: []chatbotMessage{{
			Type:    "text",
			Message: fmt.Sprintf("Click here to verify your Telegram membership: %s", iss.Link),
		}},
		Attributes: map[string]string{
			"bonus_code":    iss.Token,
			"telegram_link": iss.Link,
			"expires_in":    strconv.Itoa(int(iss.TTL.Seconds())),
		},
	})
}

func (chatbotResponder) Status(w http.ResponseWriter, st usecase.Status) {
	result := statusResult(st)
	messages := map[string]string{
		"not_found": "❌ Unknown or expired bonus code. Please request a new one.",
		"expired":   "❌ The verification link expired. Please request a new one.",
		"pending":   "⏳ Not verified yet. Complete the check in Telegram first.",
		"verified":  "✅ Membership verified. Your bonus is unlocked!",
	}
	writeJSON(w, http.StatusOK, chatbotResponse{
		Responses: []chatbotMessage{{Type: "text", Message: messages[result]}},
		Attributes: map[string]string{
			"bonus_status":   result,
			"bonus_verified": strconv.FormatBool(st.Verified),
		},
	})
}

func (chatbotResponder) Error(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
