package helpers

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/opus-finance/opus-api/libs/go/types/api/responses"
	"github.com/opus-finance/opus-api/libs/go/types/business"
)

// ToTokenResponse converts on-chain token info to API response
func ToTokenResponse(info business.TokenInfo, addTokenURI string) responses.TokenResponse {
	return responses.TokenResponse{
		Object:      "token",
		Address:     info.Address,
		Name:        info.Name,
		Symbol:      info.Symbol,
		Decimals:    info.Decimals,
		TotalSupply: info.TotalSupply,
		ChainID:     info.ChainID,
		AddTokenURI: addTokenURI,
	}
}

// ToStatisticsResponse converts token statistics to API response. Counts
// display as grouped integers, token amounts through FormatBalance.
func ToStatisticsResponse(stats business.TokenStatistics) responses.StatisticsResponse {
	return responses.StatisticsResponse{
		Object:            "statistics",
		TotalSupply:       toStatValueResponse(stats.TotalSupply, false),
		CirculatingSupply: toStatValueResponse(stats.CirculatingSupply, false),
		Holders:           toStatValueResponse(stats.Holders, true),
		Stakers:           toStatValueResponse(stats.Stakers, true),
		TotalStaked:       toStatValueResponse(stats.TotalStaked, false),
	}
}

func toStatValueResponse(v business.StatValue, count bool) responses.StatValueResponse {
	display := FormatBalance(strconv.FormatFloat(v.Value, 'f', -1, 64))
	if count {
		display = humanize.Comma(int64(v.Value))
	}
	var updated int64
	if !v.UpdatedAt.IsZero() {
		updated = v.UpdatedAt.Unix()
	}
	return responses.StatValueResponse{
		Value:     v.Value,
		Display:   display,
		Source:    v.Source,
		UpdatedAt: updated,
	}
}
