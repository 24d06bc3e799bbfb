package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

func GenerateRecordID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("rec_%d_%06d", timestamp, randomNum.Int64())
}

func GenerateRequestID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999999))
	return fmt.Sprintf("req_%d_%09d", timestamp, randomNum.Int64())
}
