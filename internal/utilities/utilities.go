package utilities

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// CreateLog agrega message al archivo dir/prefix_YYYYMMDD.log.
func CreateLog(dir, prefix, message string) {
	if dir == "" {
		return
	}
	filename := filepath.Join(dir, prefix+"_"+time.Now().Format("20060102")+".log")

	// Crear carpeta si no existe
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Println("Error creando carpeta de logs:", err)
		return
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Println("Error creando log:", err)
		return
	}
	defer f.Close()

	logLine := time.Now().Format("15:04:05") + " - " + message + "\n"
	if _, err := f.WriteString(logLine); err != nil {
		log.Println("Error escribiendo log:", err)
	}
}
