package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the local account",
	Long:  `Create an account, log in or out, and inspect the active session.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the active session",
	RunE:  runLogout,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session",
	RunE:  runStatus,
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(statusCmd)
}

func readLine(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func readPassword(prompt string) string {
	fmt.Print(prompt)
	passwordBytes, _ := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	return string(passwordBytes)
}

func runLogin(cmd *cobra.Command, args []string) error {
	kv, authStore, err := openStores()
	if err != nil {
		return err
	}
	defer kv.Close()

	email := readLine("Email: ")
	password := readPassword("Password: ")

	sess, err := authStore.Login(email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", sess.Name, sess.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	kv, authStore, err := openStores()
	if err != nil {
		return err
	}
	defer kv.Close()

	if !authStore.IsLoggedIn() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := authStore.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	kv, authStore, err := openStores()
	if err != nil {
		return err
	}
	defer kv.Close()

	name := readLine("Name: ")
	email := readLine("Email: ")
	password := readPassword("Password: ")
	confirm := readPassword("Confirm Password: ")

	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	sess, err := authStore.Signup(name, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Account created. Logged in as %s (%s)\n", sess.Name, sess.Email)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	kv, authStore, err := openStores()
	if err != nil {
		return err
	}
	defer kv.Close()

	profile, ok, err := authStore.Profile()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}

	sess, err := authStore.Current()
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", profile.Name, profile.Email)
	if sess != nil {
		fmt.Printf("Session started %s\n", sess.LoginTime.Format("2006-01-02 15:04:05"))
	}
	return nil
}
