package banner

import "fmt"

const banner = `
███████╗ ██████╗ ██████╗ ██╗   ██╗███╗   ███╗██████╗
██╔════╝██╔═══██╗██╔══██╗██║   ██║████╗ ████║██╔══██╗
█████╗  ██║   ██║██████╔╝██║   ██║██╔████╔██║██║  ██║
██╔══╝  ██║   ██║██╔══██╗██║   ██║██║╚██╔╝██║██║  ██║
██║     ╚██████╔╝██║  ██║╚██████╔╝██║ ╚═╝ ██║██████╔╝
╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═════╝
`

// Print writes the startup banner with the effective runtime settings.
func Print(addr, dbPath, engine, source, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:   %s\n", addr)
	fmt.Printf("DB Path:  %s\n", dbPath)
	if engine != "" {
		fmt.Printf("Engine:   %s\n", engine)
	}
	if source != "" {
		fmt.Printf("Config source: %s\n", source)
	}
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET  /questions            - List questions (short views)")
	fmt.Println("GET  /questions/{id}       - Fetch a question with its replies")
	fmt.Println("POST /questions            - Create a question (JSON: content)")
	fmt.Println("POST /questions/{id}/reply - Reply to a question (JSON: content)")
	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -X POST 'http://localhost%s/questions' -d '{\"content\":\"What is Rust?\"}'\n", addr)
	fmt.Printf("curl 'http://localhost%s/questions'\n", addr)
}
