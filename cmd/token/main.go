// Command token signs an access token for local testing of the booking API.
//
//	go run ./cmd/token --user 42 --roles USER,COURT_OWNER
//
// The secret is read from JWT_SECRET (a .env file is honoured) unless
// --secret is given.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/utils"
)

func main() {
	_ = godotenv.Load()

	user := flag.Uint64P("user", "u", 0, "user id placed in the sub claim")
	roles := flag.StringSliceP("roles", "r", []string{string(model.RoleUser)}, "comma separated roles")
	ttl := flag.Int("ttl", envTTL(), "lifetime in minutes")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HS256 signing secret")
	flag.Parse()

	if *user == 0 {
		fmt.Fprintln(os.Stderr, "--user is required")
		flag.Usage()
		os.Exit(2)
	}
	p := model.Principal{UserID: *user}
	for _, r := range *roles {
		role := model.Role(strings.ToUpper(strings.TrimSpace(r)))
		switch role {
		case model.RoleUser, model.RoleCourtOwner, model.RoleAdmin:
			p.Roles = append(p.Roles, role)
		default:
			fmt.Fprintf(os.Stderr, "unknown role %q\n", r)
			os.Exit(2)
		}
	}

	tok, err := utils.NewAccessToken(*secret, p, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign token:", err)
		os.Exit(1)
	}
	fmt.Println(tok.Token)
	fmt.Fprintf(os.Stderr, "expires %s\n", tok.Exp.Format("2006-01-02 15:04:05 MST"))
}

func envTTL() int {
	var n int
	if _, err := fmt.Sscan(os.Getenv("ACCESS_TOKEN_TTL_MIN"), &n); err != nil || n <= 0 {
		return 60
	}
	return n
}
