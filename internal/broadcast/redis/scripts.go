package redis

import "github.com/redis/go-redis/v9"

// The state key is a hash with fields room, created, version, data and
// closed. Both scripts refuse to overwrite a room created after the
// caller's, so a reused code is never clobbered by the older room.
//
// KEYS[1] state key, KEYS[2] room channel
// ARGV[1] room id, ARGV[2] room created_at ms

// storeState writes and publishes a ROOM_STATE envelope unless the stored
// version is the same or newer, or the room is already closed.
// ARGV[3] version, ARGV[4] envelope, ARGV[5] ttl ms
var storeState = redis.NewScript(`
local cur = redis.call('HMGET', KEYS[1], 'room', 'created', 'version', 'closed')
if cur[1] then
  if cur[1] == ARGV[1] then
    if cur[4] == '1' then return 0 end
    if tonumber(cur[3] or '0') >= tonumber(ARGV[3]) then return 0 end
  elseif tonumber(cur[2] or '0') > tonumber(ARGV[2]) then
    return 0
  end
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], 'room', ARGV[1], 'created', ARGV[2], 'version', ARGV[3], 'data', ARGV[4])
redis.call('PEXPIRE', KEYS[1], ARGV[5])
redis.call('PUBLISH', KEYS[2], ARGV[4])
return 1
`)

// markClosed replaces the stored state with a closed marker and publishes
// ROOM_CLOSED.
// ARGV[3] envelope, ARGV[4] ttl ms
var markClosed = redis.NewScript(`
local cur = redis.call('HMGET', KEYS[1], 'room', 'created')
if cur[1] and cur[1] ~= ARGV[1] and tonumber(cur[2] or '0') > tonumber(ARGV[2]) then
  return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], 'room', ARGV[1], 'created', ARGV[2], 'closed', '1')
redis.call('PEXPIRE', KEYS[1], ARGV[4])
redis.call('PUBLISH', KEYS[2], ARGV[3])
return 1
`)
