package usecase

import (
	"context"
	"fmt"
	"strings"

	"nutrilens_backend/internal/feature/analysis/domain/entity"
)

const (
	// MaxImageSize はbase64エンコード済み画像の最大サイズです（約10MBの画像に相当）。
	MaxImageSize = 14 * 1024 * 1024

	// dataURLMarker はdata URL形式の接頭辞の終端です。
	dataURLMarker = "base64,"
)

// FoodAnalyzer は画像から食事分析を生成するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FoodAnalyzer interface {
	// Analyze は接頭辞なしのbase64画像から構造化された食事分析を生成します。
	Analyze(ctx context.Context, imageBase64 string) (*entity.FoodAnalysis, error)
}

// SubscriptionChecker はユーザーのサブスクリプション状態を照会します。
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userID uint) (bool, error)
}

// ScanCounter はユーザーごとの解析回数を追跡します。
type ScanCounter interface {
	// Count は現在の使用回数を返します。
	Count(ctx context.Context, userID uint) (int64, error)
	// Increment は使用回数を1増やし、新しい値を返します。
	Increment(ctx context.Context, userID uint) (int64, error)
	// Reset は使用回数を0に戻します。
	Reset(ctx context.Context, userID uint) error
}

// analysisUsecase は食事画像解析のビジネスロジックを提供します。
type analysisUsecase struct {
	analyzer      FoodAnalyzer
	subscriptions SubscriptionChecker
	scans         ScanCounter
	freeScanLimit int64
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(analyzer FoodAnalyzer, subscriptions SubscriptionChecker, scans ScanCounter, freeScanLimit int64) *analysisUsecase {
	return &analysisUsecase{
		analyzer:      analyzer,
		subscriptions: subscriptions,
		scans:         scans,
		freeScanLimit: freeScanLimit,
	}
}

// Analyze は画像データを検証・正規化し、解析結果を返します。
// userIDがnilの場合は匿名リクエストとして扱い、クォータを消費しません。
// 認証済みかつ未購読のユーザーは無料枠を超えるとErrQuotaExceededになります。
func (u *analysisUsecase) Analyze(ctx context.Context, userID *uint, imageData string) (*entity.FoodAnalysis, error) {
	if imageData == "" {
		return nil, ErrInvalidImage
	}
	if len(imageData) > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	payload := stripDataURLPrefix(imageData)

	countScan := false
	if userID != nil {
		subscribed, err := u.subscriptions.IsSubscribed(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
		if !subscribed {
			used, err := u.scans.Count(ctx, *userID)
			if err != nil {
				return nil, fmt.Errorf("failed to read scan count: %w", err)
			}
			if used >= u.freeScanLimit {
				return nil, ErrQuotaExceeded
			}
			countScan = true
		}
	}

	result, err := u.analyzer.Analyze(ctx, payload)
	if err != nil {
		return nil, err
	}

	if countScan {
		// カウント失敗で完了した解析結果を破棄しない
		_, _ = u.scans.Increment(ctx, *userID)
	}
	return result, nil
}

// stripDataURLPrefix はdata URL形式（"data:image/jpeg;base64,..."）の接頭辞を取り除きます。
// 接頭辞がない場合は入力をそのまま返します。
func stripDataURLPrefix(s string) string {
	if i := strings.Index(s, dataURLMarker); i >= 0 {
		return s[i+len(dataURLMarker):]
	}
	return s
}
