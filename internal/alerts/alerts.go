// Package alerts emails the operator when stock runs low, and keeps a
// Redis-backed log of the day's alerts for an end-of-day summary.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glowdesk/glowdesk/internal/models"
)

type Config struct {
	From         string
	To           string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	AuthDisabled bool
}

var (
	cfg Config
	rdb *redis.Client
	ctx = context.Background()
)

func Configure(c Config) {
	cfg = c
}

func SetRedis(client *redis.Client) {
	rdb = client
}

const dailyLogKey = "glowdesk:alerts:lowstock:daily"

type logEntry struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	MinStock  int       `json:"min_stock"`
	Time      time.Time `json:"time"`
}

// LowStock records the event and emails the operator. Both paths are
// best-effort: a down SMTP server must not fail the stock adjustment.
func LowStock(p models.Product) {
	logEvent(p)

	if cfg.SMTPHost == "" || cfg.To == "" {
		return
	}
	subject := fmt.Sprintf("Low stock: %s", p.Name)
	body := fmt.Sprintf("Product: %s\nStock: %d (minimum %d)\nTime: %s",
		p.Name, p.Stock, p.MinStock, time.Now().Format(time.RFC3339))
	sendMail(subject, body, "text/plain")
}

func logEvent(p models.Product) {
	if rdb == nil {
		return
	}
	entry := logEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		Time:      time.Now(),
	}
	data, _ := json.Marshal(entry)
	_ = rdb.RPush(ctx, dailyLogKey, data).Err()
}

// StartDailySummary sends the aggregated low-stock report once per day,
// shortly before midnight.
func StartDailySummary(interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}
		time.Sleep(time.Until(next))
		SendDailySummary()
	}
}

func SendDailySummary() {
	if rdb == nil {
		return
	}
	entries, err := rdb.LRange(ctx, dailyLogKey, 0, -1).Result()
	if err != nil || len(entries) == 0 {
		return
	}
	_ = rdb.Del(ctx, dailyLogKey).Err()

	productCounts := make(map[string]int)
	var logs []logEntry
	for _, item := range entries {
		var entry logEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			logs = append(logs, entry)
			productCounts[entry.Name]++
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>Daily low-stock summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total alerts: <strong>%d</strong></p>", len(logs)))
	sb.WriteString("<h3>By product</h3><ul>")
	for name, count := range productCounts {
		sb.WriteString(fmt.Sprintf("<li>%s: %d</li>", name, count))
	}
	sb.WriteString("</ul><h3>Full log</h3><ul>")
	for _, entry := range logs {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> at stock %d (min %d) at %s</li>",
			entry.Name, entry.Stock, entry.MinStock, entry.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	sendMail("Daily low-stock report", sb.String(), "text/html")
}

func sendMail(subject, body, contentType string) {
	if cfg.SMTPHost == "" || cfg.To == "" {
		return
	}

	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + cfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: %s; charset=\"UTF-8\"", contentType),
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
	var auth smtp.Auth
	if !cfg.AuthDisabled {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	go func() {
		if err := smtp.SendMail(addr, auth, cfg.From, []string{cfg.To}, []byte(msg)); err != nil {
			slog.Warn("failed to send alert email", "err", err)
		}
	}()
}
