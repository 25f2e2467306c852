package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/NgigiN/aliorpl/internal/config"
	"github.com/NgigiN/aliorpl/internal/statement"
)

// Notifier posts import summaries to a Discord channel over the REST API.
type Notifier struct {
	session   *discordgo.Session
	channelID string
}

func NewNotifier(cfg *config.Config) (*Notifier, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return &Notifier{
		session:   session,
		channelID: cfg.DiscordChannelId,
	}, nil
}

// Notify sends the summary of an imported statement.
func (n *Notifier) Notify(stmt *statement.Statement, inserted int) error {
	if _, err := n.session.ChannelMessageSend(n.channelID, FormatSummary(stmt, inserted)); err != nil {
		return fmt.Errorf("failed to send summary: %w", err)
	}
	return nil
}

// FormatSummary renders the message posted after an import.
func FormatSummary(stmt *statement.Statement, inserted int) string {
	totals := stmt.Totals()

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **%s statement imported**\n", stmt.BankID)
	fmt.Fprintf(&b, "Account: %s\n", stmt.AccountID)
	if len(stmt.Transactions) == 0 {
		b.WriteString("No transactions found.")
		return b.String()
	}

	fmt.Fprintf(&b, "Period: %s - %s\n",
		stmt.StartDate.Format("Jan 2, 2006"),
		stmt.EndDate.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "Transactions: %d (%d new)\n", len(stmt.Transactions), inserted)
	fmt.Fprintf(&b, "**Credits**: %s %s (%d)\n", totals.Credits.StringFixed(2), stmt.Currency, totals.CreditCount)
	fmt.Fprintf(&b, "**Debits**: %s %s (%d)\n", totals.Debits.StringFixed(2), stmt.Currency, totals.DebitCount)
	fmt.Fprintf(&b, "**Balance**: %s %s", stmt.EndBalance.StringFixed(2), stmt.Currency)
	return b.String()
}
