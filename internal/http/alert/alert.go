// Package alert emails pantry events: a product being fully consumed, and a
// daily digest of products that expired. Events are buffered in a redis list
// between digests.
package alert

import (
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/rogerio-castellano/pantry-tracker/internal/redissvc"
	"github.com/rogerio-castellano/pantry-tracker/internal/repo"
)

var (
	alertFrom        = os.Getenv("ALERT_FROM")  // sender email
	alertTo          = os.Getenv("ALERT_TO")    // receiver email
	smtpServer       = os.Getenv("SMTP_SERVER") // smtp.example.com
	smtpPort         = os.Getenv("SMTP_PORT")   // e.g., 587
	smtpUser         = os.Getenv("SMTP_USER")
	smtpPassword     = os.Getenv("SMTP_PASS")
	smtpAuthDisabled = os.Getenv("SMTP_AUTH_DISABLED")

	redisSvc *redissvc.RedisService
)

func SetRedisService(rs *redissvc.RedisService) {
	redisSvc = rs
}

const DailyEventLogKey = "pantry:alertlog:daily"

type EventLogEntry struct {
	Product  string    `json:"product"`
	Event    string    `json:"event"`
	Quantity float64   `json:"quantity"`
	Time     time.Time `json:"time"`
}

// ProductExhausted records that the product's declared quantity is now fully
// consumed and sends an immediate notification.
func ProductExhausted(product models.Product) {
	logEvent(EventLogEntry{
		Product:  product.Name,
		Event:    "exhausted",
		Quantity: product.Quantity,
		Time:     time.Now(),
	})

	subject := fmt.Sprintf("Pantry alert: %s fully consumed", product.Name)
	body := fmt.Sprintf("Product: %s\nDeclared quantity: %v %s\nTime: %s",
		product.Name, product.Quantity, product.Type, time.Now().Format(time.RFC3339))
	sendMail(subject, body, "text/plain")
}

// ProductExpired records an expired product for the daily digest.
func ProductExpired(product models.Product) {
	logEvent(EventLogEntry{
		Product:  product.Name,
		Event:    "expired",
		Quantity: product.Quantity,
		Time:     time.Now(),
	})
}

func logEvent(entry EventLogEntry) {
	if redisSvc == nil {
		return
	}
	data, _ := json.Marshal(entry)
	if err := redisSvc.PushLog(DailyEventLogKey, data); err != nil {
		log.Printf("failed to log alert event: %v", err)
	}
}

// StartExpiryScan periodically looks for products that crossed their
// expiration date and records each one once for the daily digest.
func StartExpiryScan(products repo.ProductRepository, interval time.Duration) {
	seen := make(map[int]bool)
	for {
		all, err := products.GetAll()
		if err != nil {
			log.Printf("expiry scan failed: %v", err)
		} else {
			now := time.Now()
			for _, p := range all {
				if !p.Valid(now) && !seen[p.ID] {
					seen[p.ID] = true
					ProductExpired(p)
				}
			}
		}
		time.Sleep(interval)
	}
}

// StartDailySummary sends the digest at the end of each day.
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
	if redisSvc == nil {
		return
	}
	entries, err := redisSvc.DrainLog(DailyEventLogKey)
	if err != nil || len(entries) == 0 {
		return
	}

	var events []EventLogEntry
	eventCounts := make(map[string]int)
	for _, item := range entries {
		var entry EventLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			events = append(events, entry)
			eventCounts[entry.Event]++
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>Daily pantry summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total events: <strong>%d</strong></p>", len(events)))

	sb.WriteString("<h3>By event</h3><ul>")
	for event, count := range eventCounts {
		sb.WriteString(fmt.Sprintf("<li><code>%s</code>: %d</li>", event, count))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>Full log</h3><ul>")
	for _, entry := range events {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> %s (quantity %v) at %s</li>",
			entry.Product, entry.Event, entry.Quantity, entry.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	sendMail("Daily pantry report", sb.String(), `text/html; charset="UTF-8"`)
}

func sendMail(subject, body, contentType string) {
	if smtpServer == "" || alertTo == "" {
		return
	}

	msg := strings.Join([]string{
		"From: " + alertFrom,
		"To: " + alertTo,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", smtpServer, smtpPort)
	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpServer)
	if smtpAuthDisabled != "" {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, alertFrom, []string{alertTo}, []byte(msg)); err != nil {
			log.Printf("failed to send alert email: %v", err)
		}
	}()
}
