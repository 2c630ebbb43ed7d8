package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/idilsaglam/healthlog/internal/auth"
	"github.com/idilsaglam/healthlog/internal/ui"
)

func doAuthLogin() int {
	fmt.Print("Paste your token: ")
	token, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && strings.TrimSpace(token) == "" {
		ui.Fail("read token: " + err.Error())
		return 1
	}
	if err := auth.SetToken(token, nil); err != nil {
		ui.Fail("save token: " + err.Error())
		return 1
	}
	ui.OK("logged in")
	return 0
}

func doAuthLogout() int {
	ti, _ := auth.GetToken()
	if ti != nil && ti.Source == "env" {
		ui.OK("token is provided by " + auth.EnvToken + " env var (nothing to delete)")
		return 0
	}
	if err := auth.DeleteToken(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func doAuthStatus() int {
	ti, err := auth.GetToken()
	if err != nil {
		ui.Fail("status: " + err.Error())
		return 1
	}
	if ti == nil {
		fmt.Println(ui.C(ui.Current().Muted, "not logged in"))
		fmt.Println("Run: healthlog auth login")
		return 0
	}
	fmt.Printf("source: %s\n", ti.Source)
	if ti.ExpiresAt != nil {
		fmt.Printf("expires: %s\n", ti.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("expires: (unknown)")
	}
	fmt.Println("env override: " + auth.EnvToken)
	return 0
}

// whoami decodes a JWT locally (unsigned); opaque tokens print basic info.
func doAuthWhoAmI() int {
	ti, _ := auth.GetToken()
	if ti == nil {
		ui.Fail("not logged in. Run: healthlog auth login")
		return 2
	}
	if p, ok := auth.JWTPayload(ti.Token); ok {
		fmt.Println("JWT payload:")
		fmt.Println(p)
		return 0
	}
	fmt.Println("Opaque token (cannot introspect locally).")
	fmt.Println("source:", ti.Source)
	return 0
}
