package main

import (
	"zentry_api/internal/api/initsvc"
	"zentry_api/internal/global"
	"zentry_api/internal/logger"
)

// InitDefaultData materializa los datos iniciales del sistema: el
// usuario administrador tomado de FIREBASE_ADMIN_UID, si está
// configurado. Sin admin inicial el sistema arranca igual; un admin
// puede crearse después directamente en la base de datos.
func InitDefaultData() {
	log := logger.GetAppLogger()

	initService, err := initsvc.NewInitService()
	if err != nil {
		log.Fatalf("No se pudo crear el servicio de inicialización: %v", err)
	}

	adminUID := global.ServerConfig.FirebaseAdminUID
	if adminUID == "" {
		log.Info("FIREBASE_ADMIN_UID no configurado, se omite el admin inicial")
		return
	}

	if err := initService.InitAdminUser(adminUID); err != nil {
		log.Warnf("No se pudo inicializar el usuario administrador: %v", err)
		return
	}

	log.Info("Datos iniciales verificados")
}
