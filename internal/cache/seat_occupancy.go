package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-gin-seat-reservation/internal/model"
	apperrors "go-gin-seat-reservation/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

type RedisSeatOccupancyManager interface {
	// 預熱：把分區的已售座位載入 Redis set
	WarmUpOccupancy(ctx context.Context, eventID string, zoneID string, seats []model.SeatCoord) error
	// 獲取：讀取分區的已售座位
	GetOccupied(ctx context.Context, eventID string, zoneID string) ([]model.SeatCoord, error)
	// 佔位：整批原子佔下座位，任何一個已被佔走就全部失敗 (使用Lua腳本確保原子性)
	ClaimSeats(ctx context.Context, eventID string, picks []model.Pick) error
	// 回滾：釋放先前佔下的座位
	ReleaseSeats(ctx context.Context, eventID string, picks []model.Pick) error
}

type RedisSeatOccupancyManagerImpl struct {
	client *redis.Client
}

func NewRedisSeatOccupancyManager(client *redis.Client) RedisSeatOccupancyManager {
	return &RedisSeatOccupancyManagerImpl{
		client: client,
	}
}

// 分區已售座位 set 的 key
func (m *RedisSeatOccupancyManagerImpl) getZoneKey(eventID, zoneID string) string {
	return fmt.Sprintf("event:%s:zone:%s:occupied", eventID, zoneID)
}

func seatMember(row, col int) string {
	return fmt.Sprintf("%d:%d", row, col)
}

func parseSeatMember(member string) (model.SeatCoord, error) {
	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return model.SeatCoord{}, fmt.Errorf("invalid seat member: %s", member)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.SeatCoord{}, fmt.Errorf("invalid seat member: %s", member)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return model.SeatCoord{}, fmt.Errorf("invalid seat member: %s", member)
	}
	return model.SeatCoord{Row: row, Col: col}, nil
}

func (m *RedisSeatOccupancyManagerImpl) WarmUpOccupancy(ctx context.Context, eventID string, zoneID string, seats []model.SeatCoord) error {
	key := m.getZoneKey(eventID, zoneID)

	pipe := m.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(seats) > 0 {
		members := make([]interface{}, 0, len(seats))
		for _, s := range seats {
			members = append(members, seatMember(s.Row, s.Col))
		}
		pipe.SAdd(ctx, key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (m *RedisSeatOccupancyManagerImpl) GetOccupied(ctx context.Context, eventID string, zoneID string) ([]model.SeatCoord, error) {
	key := m.getZoneKey(eventID, zoneID)
	members, err := m.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	seats := make([]model.SeatCoord, 0, len(members))
	for _, member := range members {
		seat, err := parseSeatMember(member)
		if err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, nil
}

// 佔位腳本：KEYS 是牽涉到的分區 set，ARGV 是 (key索引, 座位) 成對排列。
// 先全部檢查再全部寫入，任何一個座位已存在就整批放棄。
const claimSeatsScript = `
	local n = #ARGV
	for i = 1, n, 2 do
		local key = KEYS[tonumber(ARGV[i])]
		if redis.call('SISMEMBER', key, ARGV[i+1]) == 1 then
			return 0
		end
	end
	for i = 1, n, 2 do
		redis.call('SADD', KEYS[tonumber(ARGV[i])], ARGV[i+1])
	end
	return 1
`

func (m *RedisSeatOccupancyManagerImpl) claimArgs(eventID string, picks []model.Pick) ([]string, []interface{}) {
	keys := []string{}
	keyIndex := map[string]int{}
	args := make([]interface{}, 0, len(picks)*2)

	for _, p := range picks {
		key := m.getZoneKey(eventID, p.ZoneID)
		idx, ok := keyIndex[key]
		if !ok {
			keys = append(keys, key)
			idx = len(keys) // Lua 的 KEYS 是 1-based
			keyIndex[key] = idx
		}
		args = append(args, idx, seatMember(p.Row, p.Col))
	}
	return keys, args
}

func (m *RedisSeatOccupancyManagerImpl) ClaimSeats(ctx context.Context, eventID string, picks []model.Pick) error {
	if len(picks) == 0 {
		return apperrors.ErrEmptySelection
	}
	keys, args := m.claimArgs(eventID, picks)

	result, err := m.client.Eval(ctx, claimSeatsScript, keys, args...).Result()
	if err != nil {
		return err
	}

	code, ok := result.(int64)
	if !ok {
		return errors.New("unexpected result")
	}

	switch code {
	case 1:
		return nil
	case 0:
		return apperrors.ErrSeatAlreadyTaken
	default:
		return errors.New("unexpected result")
	}
}

func (m *RedisSeatOccupancyManagerImpl) ReleaseSeats(ctx context.Context, eventID string, picks []model.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	pipe := m.client.TxPipeline()
	for _, p := range picks {
		pipe.SRem(ctx, m.getZoneKey(eventID, p.ZoneID), seatMember(p.Row, p.Col))
	}
	_, err := pipe.Exec(ctx)
	return err
}
