package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Message is the WeChat Work webhook payload.
type Message struct {
	MsgType  string          `json:"msgtype"`
	Text     TextContent     `json:"text,omitempty"`
	Markdown MarkdownContent `json:"markdown,omitempty"`
}

type TextContent struct {
	Content             string   `json:"content"`
	MentionedList       []string `json:"mentioned_list,omitempty"`
	MentionedMobileList []string `json:"mentioned_mobile_list,omitempty"`
}

type MarkdownContent struct {
	Content string `json:"content"`
}

// Sender posts run notifications to a WeChat Work group webhook.
// An empty key disables sending, so callers need no guard.
type Sender struct {
	WebhookKey string
	Enabled    bool
}

func NewSender(webhookKey string) *Sender {
	return &Sender{
		WebhookKey: webhookKey,
		Enabled:    webhookKey != "",
	}
}

// SendText sends a plain text message.
func (s *Sender) SendText(content string, mentionedList, mentionedMobileList []string) error {
	if !s.Enabled {
		return nil
	}
	return s.send(Message{
		MsgType: "text",
		Text: TextContent{
			Content:             content,
			MentionedList:       mentionedList,
			MentionedMobileList: mentionedMobileList,
		},
	})
}

// SendMarkdown sends a markdown message.
func (s *Sender) SendMarkdown(content string) error {
	if !s.Enabled {
		return nil
	}
	return s.send(Message{
		MsgType:  "markdown",
		Markdown: MarkdownContent{Content: content},
	})
}

func (s *Sender) send(message Message) error {
	var webhookURL = fmt.Sprintf("https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=%s", s.WebhookKey)

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notification webhook status %d", resp.StatusCode)
	}

	log.Println("notification sent")
	return nil
}
