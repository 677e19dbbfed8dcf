package utility

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	firebaseApp     *firebase.App
	firebaseAuth    *auth.Client
	storageClient   *storage.Client
	storageBucketID string
)

// resolveCredentialsPath resuelve la ruta del archivo de credenciales.
// Las rutas relativas se buscan subiendo desde el directorio actual
// hasta encontrar el directorio que contiene config/env.
func resolveCredentialsPath(credentialsPath string) (string, error) {
	if filepath.IsAbs(credentialsPath) {
		if _, err := os.Stat(credentialsPath); err != nil {
			return "", fmt.Errorf("archivo de credenciales no encontrado: %s", credentialsPath)
		}
		return credentialsPath, nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(currentDir, credentialsPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("archivo de credenciales no encontrado: %s", credentialsPath)
		}
		currentDir = parentDir
	}
}

// InitFirebase inicializa el SDK de Firebase Admin: autenticación y
// cliente de Cloud Storage.
func InitFirebase(projectID, credentialsPath, storageBucket string) error {
	resolved, err := resolveCredentialsPath(credentialsPath)
	if err != nil {
		return err
	}

	opt := option.WithCredentialsFile(resolved)
	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: storageBucket,
	}, opt)
	if err != nil {
		return fmt.Errorf("no se pudo inicializar Firebase: %v", err)
	}
	firebaseApp = app

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return fmt.Errorf("no se pudo obtener el cliente de Firebase Auth: %v", err)
	}
	firebaseAuth = authClient

	stClient, err := storage.NewClient(context.Background(), opt)
	if err != nil {
		return fmt.Errorf("no se pudo obtener el cliente de Storage: %v", err)
	}
	storageClient = stClient
	storageBucketID = storageBucket

	return nil
}

// GetFirebaseAuth devuelve el cliente de Firebase Auth.
func GetFirebaseAuth() *auth.Client {
	return firebaseAuth
}

// GetStorageBucket devuelve el handle del bucket configurado.
func GetStorageBucket() (*storage.BucketHandle, error) {
	if storageClient == nil {
		return nil, fmt.Errorf("storage no inicializado")
	}
	return storageClient.Bucket(storageBucketID), nil
}

// VerifyIDToken verifica un ID token de Firebase y devuelve el token
// decodificado.
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth no inicializado")
	}
	token, err := firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("no se pudo verificar el ID token: %v", err)
	}
	return token, nil
}

// GetUserByUID obtiene el usuario de Firebase por su UID.
func GetUserByUID(ctx context.Context, uid string) (*auth.UserRecord, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth no inicializado")
	}
	user, err := firebaseAuth.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el usuario: %v", err)
	}
	return user, nil
}

// CreateFirebaseUser crea un usuario en Firebase Auth con correo y
// contraseña.
func CreateFirebaseUser(ctx context.Context, email, password, displayName string) (*auth.UserRecord, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth no inicializado")
	}
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName).
		EmailVerified(false).
		Disabled(false)
	user, err := firebaseAuth.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("no se pudo crear el usuario en Firebase: %v", err)
	}
	return user, nil
}

// DeleteFirebaseUser elimina un usuario de Firebase Auth por su UID.
func DeleteFirebaseUser(ctx context.Context, uid string) error {
	if firebaseAuth == nil {
		return fmt.Errorf("firebase auth no inicializado")
	}
	if err := firebaseAuth.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("no se pudo eliminar el usuario de Firebase: %v", err)
	}
	return nil
}

// SetUserDisabled habilita o deshabilita la cuenta de Firebase del
// usuario.
func SetUserDisabled(ctx context.Context, uid string, disabled bool) error {
	if firebaseAuth == nil {
		return fmt.Errorf("firebase auth no inicializado")
	}
	params := (&auth.UserToUpdate{}).Disabled(disabled)
	if _, err := firebaseAuth.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("no se pudo actualizar el estado del usuario: %v", err)
	}
	return nil
}
