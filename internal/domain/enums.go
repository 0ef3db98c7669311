package domain

var Sports = []string{
	"Cricket",
	"Football",
	"Tennis",
	"Horse Racing",
	"Greyhound Racing",
	"Kabaddi",
	"Basketball",
	"Volleyball",
	"Ice Hockey",
	"Table Tennis",
}

var Markets = []string{
	"Match Odds",
	"Bookmaker",
	"Fancy",
}

var Investigators = []string{
	"Aarav",
	"Bhavesh",
	"Chirag",
	"Deepak",
	"Farhan",
	"Gaurav",
	"Harsh",
	"Ishaan",
}

var ProofTypes = []string{
	"Odds Manipulation",
	"Price Difference",
	"Live Line Betting",
	"Group Betting",
	"Multiple Accounts",
}

const (
	ProofStatusSubmitted    = "Submitted"
	ProofStatusNotSubmitted = "Not Submitted"
)

var ProofStatuses = []string{ProofStatusSubmitted, ProofStatusNotSubmitted}

func Contains(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}
