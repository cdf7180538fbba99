package sqlinline

const QInsertActivity = `--sql 02645320-4b3e-4a56-9928-83b94b2ac4dd
insert into activity_logs (user_id, started_at, ended_at, duration_seconds, country)
values ($1::uuid, $2, $3, $4, $5)
returning id, created_at;
`

const QListActivity = `--sql 9f5d3734-702b-4f9a-974f-f5fae9a34e83
select id, started_at, ended_at, duration_seconds, country, created_at
from activity_logs
where user_id = $1::uuid
order by started_at desc
limit 50;
`
