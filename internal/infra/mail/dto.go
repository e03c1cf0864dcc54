package mail

import "github.com/royaisolutions/agency-api/internal/entity"

type EmailSender struct {
	Host        string
	Port        int
	User        string
	Password    string
	FromAddress string
	AdminEmail  string
	TemplateDir string
}

// templateData is what every email template renders from. Dollar fields are
// pre-formatted because totals are stored in minor units.
type templateData struct {
	ProposalNumber string
	ClientName     string
	ClientEmail    string
	CompanyName    string
	Services       []serviceLine
	OneTimeTotal   string
	MonthlyTotal   string
	GrandTotal     string
	Timeline       string
	Budget         string
	Requirements   string
	PaymentType    string
	PaymentAmount  string
	HasOneTime     bool
	HasMonthly     bool
}

type serviceLine struct {
	Label  string
	Price  string
	Period string
}

func serviceLines(services []entity.ServiceSelection) []serviceLine {
	lines := make([]serviceLine, 0, len(services))
	for _, s := range services {
		period := ""
		if s.Recurring {
			period = "/mo"
		}
		lines = append(lines, serviceLine{
			Label:  s.Label,
			Price:  formatMoney(s.Price),
			Period: period,
		})
	}
	return lines
}
