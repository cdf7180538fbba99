package sqlinline

const QSelectProgressByUser = `--sql 4382a534-e220-45b7-becc-7e058420f41c
select node_id, status
from user_node_progress
where user_id = $1::uuid;
`

const QUpsertProgress = `--sql 0f6cc582-08e3-4ea7-84ba-13d09b120af1
insert into user_node_progress (user_id, node_id, status, completed_at)
values ($1::uuid, $2::uuid, $3, $4)
on conflict (user_id, node_id) do update set
    status = excluded.status,
    completed_at = excluded.completed_at,
    updated_at = now()
returning id, status, completed_at;
`
